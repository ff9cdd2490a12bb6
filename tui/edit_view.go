// ABOUTME: Edit view: schema-driven create/edit form for the active screen
// ABOUTME: Ref fields cycle loaded options; cascade chains reload children on change
package tui

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/voyagehq/tripdesk/api"
	"github.com/voyagehq/tripdesk/schema"
	"github.com/voyagehq/tripdesk/screens"
)

var (
	fieldErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	selectValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

// formOptions carries everything the form's choice fields need, fetched
// by one background command.
type formOptions struct {
	refs   map[string][]screens.Option
	chains []chainOptions
}

// chainOptions is one cascade chain's resolved option sets and stored
// selections, parent first.
type chainOptions struct {
	levels   [][]screens.Option
	selected []int64
}

// openForm enters the edit view. id zero opens create mode from schema
// defaults; otherwise the draft is initialized from the selected record.
// Choice-field options load in the background while the form is usable.
func (m Model) openForm(id int64) (tea.Model, tea.Cmd) {
	scr := m.screens[m.active]

	if id == 0 {
		m.form.OpenCreate(scr.Schema)
	} else {
		rec, ok := m.recordByID(scr, id)
		if !ok {
			return m.showNotice("Record not found in the loaded list", noticeError)
		}
		m.form.OpenEdit(scr.Schema, id, rec)
	}

	m.multiTargets = map[int64]bool{}
	m.refOptions = map[string][]screens.Option{}
	m.chains = nil
	m.chainOf = map[string]chainPos{}
	for ci, chain := range scr.Chains {
		for level, field := range chain {
			m.chainOf[field] = chainPos{chain: ci, level: level}
		}
		m.chains = append(m.chains, screens.NewCascade(chain...))
	}

	m.initFormInputs(scr)
	m.focusIndex = 0
	m.updateFormFocus(scr)
	m.saving = false
	m.viewMode = ViewEdit

	if !screenNeedsOptions(scr) {
		m.optionsLoading = false
		return m, nil
	}
	m.optionsLoading = true
	return m, m.fetchFormOptions(scr)
}

func screenNeedsOptions(scr *Screen) bool {
	for _, f := range scr.Schema.Fields {
		if f.Type == schema.Ref {
			return true
		}
	}
	return false
}

func (m Model) recordByID(scr *Screen, id int64) (record, bool) {
	for _, rec := range scr.List.Items() {
		if recordID(rec) == id {
			return rec, true
		}
	}
	return nil, false
}

// fetchFormOptions loads every choice field's options in the background:
// flat ref fields unscoped, cascade chains level by level with missing
// ancestors backfilled from the stored child record.
func (m Model) fetchFormOptions(scr *Screen) tea.Cmd {
	client := m.client
	idx := m.active
	draft := make(map[string]string, len(m.form.Draft))
	for k, v := range m.form.Draft {
		draft[k] = v
	}
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		options, err := loadFormOptions(ctx, client, scr, draft)
		return formOptionsMsg{screen: idx, options: options, err: err}
	}
}

func loadFormOptions(ctx context.Context, client *api.Client, scr *Screen, draft map[string]string) (formOptions, error) {
	out := formOptions{refs: map[string][]screens.Option{}}
	var firstErr error
	collect := func(err error) {
		if firstErr == nil && err != nil {
			firstErr = err
		}
	}

	inChain := map[string]bool{}
	for _, chain := range scr.Chains {
		co, err := loadChainOptions(ctx, client, scr, chain, draft)
		collect(err)
		out.chains = append(out.chains, co)
		for _, field := range chain {
			inChain[field] = true
		}
	}

	for _, f := range scr.Schema.Fields {
		if f.Type != schema.Ref || inChain[f.Name] {
			continue
		}
		options, err := fetchOptionList(ctx, client, f.Ref, nil)
		if err != nil {
			collect(fmt.Errorf("load %s options: %w", f.Label, err))
			continue
		}
		out.refs[f.Name] = options
	}
	return out, firstErr
}

// loadChainOptions resolves one chain. A stored child whose ancestors are
// missing from the draft (a location saved with only its city) gets them
// backfilled child-up from the referenced records, so the edit form opens
// with every level populated and the stored value intact.
func loadChainOptions(ctx context.Context, client *api.Client, scr *Screen, chain []string, draft map[string]string) (chainOptions, error) {
	paths := chainPaths(scr, chain)
	ids := make([]int64, len(chain))
	for level, field := range chain {
		ids[level], _ = schema.RefFromWire(draft[field])
	}

	var firstErr error
	collect := func(err error) {
		if firstErr == nil && err != nil {
			firstErr = err
		}
	}

	for level := len(chain) - 1; level > 0; level-- {
		if ids[level] == 0 || ids[level-1] != 0 {
			continue
		}
		rec, err := api.NewResource[record](client, paths[level]).Get(ctx, ids[level])
		if err != nil {
			collect(fmt.Errorf("resolve %s %d: %w", chain[level], ids[level], err))
			continue
		}
		ids[level-1] = recordRefID(rec, chain[level-1])
	}

	co := chainOptions{levels: make([][]screens.Option, len(chain)), selected: ids}
	for level := range chain {
		if level > 0 && ids[level-1] == 0 {
			break
		}
		var filters url.Values
		if level > 0 {
			filters = api.ScopedTo(chain[level-1], ids[level-1])
		}
		options, err := fetchOptionList(ctx, client, paths[level], filters)
		if err != nil {
			collect(fmt.Errorf("load %s options: %w", chain[level], err))
			break
		}
		co.levels[level] = options
	}
	return co, firstErr
}

func chainPaths(scr *Screen, chain []string) []string {
	paths := make([]string, len(chain))
	for i, field := range chain {
		f, _ := scr.Schema.Field(field)
		paths[i] = f.Ref
	}
	return paths
}

// applyFormOptions lands the background option fetch on the open form.
// Draft values the options could not confirm stay untouched: a stored
// foreign key must survive a failed or partial load.
func (m Model) applyFormOptions(msg formOptionsMsg) (tea.Model, tea.Cmd) {
	if msg.screen != m.active || m.viewMode != ViewEdit {
		return m, nil
	}
	m.optionsLoading = false
	scr := m.screens[msg.screen]
	m.refOptions = msg.options.refs

	for ci, co := range msg.options.chains {
		if ci >= len(m.chains) || ci >= len(scr.Chains) {
			break
		}
		cascade := m.chains[ci]
		for level := range co.levels {
			cascade.ResolveLoad(level, cascade.BeginLoad(level), co.levels[level], nil)
			id := co.selected[level]
			if id == 0 {
				break
			}
			if cascade.Select(level, id) != nil {
				break
			}
		}
		for level, field := range scr.Chains[ci] {
			if id := cascade.Selected(level); id != 0 {
				m.form.Set(field, schema.RefToWire(id))
			}
		}
	}

	if msg.err != nil {
		return m.showNotice(msg.err.Error(), noticeError)
	}
	return m, nil
}

// applyChainLoad lands a reloaded child level after a parent change.
func (m Model) applyChainLoad(msg chainLoadedMsg) (tea.Model, tea.Cmd) {
	if m.viewMode != ViewEdit || msg.chain >= len(m.chains) {
		return m, nil
	}
	if !m.chains[msg.chain].ResolveLoad(msg.level, msg.token, msg.options, msg.err) {
		return m, nil
	}
	if msg.err != nil {
		return m.showNotice("Failed to load options: "+msg.err.Error(), noticeError)
	}
	return m, nil
}

func fetchOptionList(ctx context.Context, client *api.Client, path string, filters url.Values) ([]screens.Option, error) {
	res := api.NewResource[record](client, path)
	result, err := res.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	options := make([]screens.Option, 0, len(result.Items))
	for _, rec := range result.Items {
		options = append(options, screens.Option{ID: recordID(rec), Label: optionLabel(rec)})
	}
	return options, nil
}

func optionLabel(rec record) string {
	for _, key := range []string{"name", "purpose", "reference"} {
		if label := recordField(rec, key); label != "" {
			return label
		}
	}
	return recordField(rec, "id")
}

func (m *Model) initFormInputs(scr *Screen) {
	inputs := make([]textinput.Model, len(scr.Schema.Fields))
	for i, f := range scr.Schema.Fields {
		if !textLike(f) {
			continue
		}
		in := textinput.New()
		in.Placeholder = f.Label
		if f.MaxLen > 0 {
			in.CharLimit = f.MaxLen
		}
		in.SetValue(m.form.Draft[f.Name])
		inputs[i] = in
	}
	m.formInputs = inputs
}

func textLike(f schema.Field) bool {
	switch f.Type {
	case schema.Text, schema.Number, schema.Date:
		return true
	default:
		return false
	}
}

func (m *Model) updateFormFocus(scr *Screen) {
	for i, f := range scr.Schema.Fields {
		if !textLike(f) {
			continue
		}
		if i == m.focusIndex {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m Model) renderEditView() string {
	var s strings.Builder
	scr := m.screens[m.active]

	if m.form.IsCreate() {
		s.WriteString(titleStyle.Render("NEW " + strings.ToUpper(scr.Title)))
	} else {
		s.WriteString(titleStyle.Render("EDIT " + strings.ToUpper(scr.Title)))
	}
	s.WriteString("\n\n")

	if m.optionsLoading {
		s.WriteString(m.spinner.View() + " Loading options...")
		s.WriteString("\n\n")
	}

	for i, f := range scr.Schema.Fields {
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(m.renderFormField(scr, i, f))
		if problem, ok := m.form.Errors[f.Name]; ok {
			s.WriteString("\n    " + fieldErrorStyle.Render(problem))
		}
		s.WriteString("\n")
	}

	if m.form.Generic != "" {
		s.WriteString("\n" + fieldErrorStyle.Render(m.form.Generic))
	}
	if m.saving {
		s.WriteString("\n" + m.spinner.View() + " Saving...")
	}

	s.WriteString("\n")
	s.WriteString(m.renderEditHelp(scr))
	return s.String()
}

func (m Model) renderFormField(scr *Screen, i int, f schema.Field) string {
	if textLike(f) {
		return m.formInputs[i].View()
	}
	switch f.Type {
	case schema.Bool:
		mark := "[ ]"
		if m.form.Draft[f.Name] == "true" {
			mark = checkedStyle.Render("[x]")
		}
		return fmt.Sprintf("%s %s", mark, f.Label)
	case schema.Select:
		return fmt.Sprintf("%s: %s", f.Label, selectValueStyle.Render(orDash(m.form.Draft[f.Name])))
	case schema.Ref:
		if m.isMultiTarget(scr, f) {
			return fmt.Sprintf("%s: %s", f.Label, m.renderMultiTarget(f))
		}
		return fmt.Sprintf("%s: %s", f.Label, selectValueStyle.Render(orDash(m.refLabel(f))))
	}
	return f.Label
}

func (m Model) isMultiTarget(scr *Screen, f schema.Field) bool {
	return m.form.IsCreate() && scr.MultiTargetField == f.Name
}

func (m Model) renderMultiTarget(f schema.Field) string {
	options := m.refOptions[f.Name]
	if len(options) == 0 {
		return "(no options loaded)"
	}
	parts := make([]string, 0, len(options))
	for _, o := range options {
		if m.multiTargets[o.ID] {
			parts = append(parts, checkedStyle.Render("[x] "+o.Label))
		} else {
			parts = append(parts, "[ ] "+o.Label)
		}
	}
	return strings.Join(parts, "  ")
}

// refLabel resolves the draft's wire value to its option label.
func (m Model) refLabel(f schema.Field) string {
	id, err := schema.RefFromWire(m.form.Draft[f.Name])
	if err != nil || id == 0 {
		return ""
	}
	for _, o := range m.fieldOptions(f) {
		if o.ID == id {
			return o.Label
		}
	}
	return m.form.Draft[f.Name]
}

func (m Model) fieldOptions(f schema.Field) []screens.Option {
	if pos, ok := m.chainOf[f.Name]; ok {
		return m.chains[pos.chain].Options(pos.level)
	}
	return m.refOptions[f.Name]
}

func (m Model) renderEditHelp(scr *Screen) string {
	help := []string{
		"Tab/↑/↓: Field",
		"←/→: Cycle choice",
		"Space: Toggle",
		"Enter: Save",
		"Esc: Cancel",
	}
	if scr.MultiTargetField != "" && m.form.IsCreate() {
		help = append(help, "Space on "+scr.MultiTargetField+": select targets")
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	scr := m.screens[m.active]
	fields := scr.Schema.Fields

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.form.Close()
		m.viewMode = ViewList
		return m, nil
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(fields)
		m.updateFormFocus(scr)
		return m, nil
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex + len(fields) - 1) % len(fields)
		m.updateFormFocus(scr)
		return m, nil
	case "enter":
		return m.submitForm()
	}

	f := fields[m.focusIndex]
	switch {
	case textLike(f):
		var cmd tea.Cmd
		m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
		m.form.Set(f.Name, m.formInputs[m.focusIndex].Value())
		return m, cmd
	case f.Type == schema.Bool:
		if key := msg.String(); key == " " || key == "left" || key == "right" {
			m.toggleBool(f)
		}
	case f.Type == schema.Select:
		switch msg.String() {
		case "left":
			m.cycleSelect(f, -1)
		case "right", " ":
			m.cycleSelect(f, 1)
		}
	case f.Type == schema.Ref:
		if m.isMultiTarget(scr, f) {
			switch msg.String() {
			case " ":
				m.toggleTarget(f)
			case "left":
				m.moveTargetCursor(f, -1)
			case "right":
				m.moveTargetCursor(f, 1)
			}
			return m, nil
		}
		switch msg.String() {
		case "left":
			return m.cycleRef(scr, f, -1)
		case "right", " ":
			return m.cycleRef(scr, f, 1)
		}
	}
	return m, nil
}

func (m *Model) toggleBool(f schema.Field) {
	if m.form.Draft[f.Name] == "true" {
		m.form.Set(f.Name, "false")
	} else {
		m.form.Set(f.Name, "true")
	}
}

func (m *Model) cycleSelect(f schema.Field, dir int) {
	options := f.Options
	if !f.Required {
		options = append([]string{""}, options...)
	}
	if len(options) == 0 {
		return
	}
	current := 0
	for i, o := range options {
		if o == m.form.Draft[f.Name] {
			current = i
			break
		}
	}
	next := (current + dir + len(options)) % len(options)
	m.form.Set(f.Name, options[next])
}

// cycleRef steps a foreign-key field through its loaded option set. For
// chain fields the selection applies immediately and the child level's
// options reload in the background.
func (m Model) cycleRef(scr *Screen, f schema.Field, dir int) (tea.Model, tea.Cmd) {
	options := m.fieldOptions(f)
	ids := make([]int64, 0, len(options)+1)
	if !f.Required {
		ids = append(ids, 0)
	}
	for _, o := range options {
		ids = append(ids, o.ID)
	}
	if len(ids) == 0 {
		return m, nil
	}

	current, _ := schema.RefFromWire(m.form.Draft[f.Name])
	idx := 0
	for i, id := range ids {
		if id == current {
			idx = i
			break
		}
	}
	next := ids[(idx+dir+len(ids))%len(ids)]

	pos, inChain := m.chainOf[f.Name]
	if !inChain {
		m.form.Set(f.Name, schema.RefToWire(next))
		return m, nil
	}

	cascade := m.chains[pos.chain]
	if err := cascade.Select(pos.level, next); err != nil {
		return m, nil
	}
	chain := scr.Chains[pos.chain]
	m.form.Set(f.Name, schema.RefToWire(next))
	// An explicit parent change invalidates the children, in the draft
	// as well as the cascade.
	for level := pos.level + 1; level < len(chain); level++ {
		m.form.Set(chain[level], "")
	}

	child := pos.level + 1
	if next == 0 || child >= cascade.Depth() {
		return m, nil
	}
	token := cascade.BeginLoad(child)
	return m, m.fetchChainLevel(scr, pos.chain, child, token, next)
}

// fetchChainLevel reloads one chain level's options scoped to the newly
// selected parent.
func (m Model) fetchChainLevel(scr *Screen, chainIdx, level, token int, parentID int64) tea.Cmd {
	client := m.client
	chain := scr.Chains[chainIdx]
	path := chainPaths(scr, chain)[level]
	parentField := chain[level-1]
	return func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		options, err := fetchOptionList(ctx, client, path, api.ScopedTo(parentField, parentID))
		return chainLoadedMsg{chain: chainIdx, level: level, token: token, options: options, err: err}
	}
}

// Multi-target selection: the draft ignores the target field; membership
// lives in multiTargets and the cursor rides the draft value.
func (m *Model) toggleTarget(f schema.Field) {
	options := m.refOptions[f.Name]
	if len(options) == 0 {
		return
	}
	cursor, _ := schema.RefFromWire(m.form.Draft[f.Name])
	if cursor == 0 {
		cursor = options[0].ID
		m.form.Set(f.Name, schema.RefToWire(cursor))
	}
	m.multiTargets[cursor] = !m.multiTargets[cursor]
	if !m.multiTargets[cursor] {
		delete(m.multiTargets, cursor)
	}
}

func (m *Model) moveTargetCursor(f schema.Field, dir int) {
	options := m.refOptions[f.Name]
	if len(options) == 0 {
		return
	}
	cursor, _ := schema.RefFromWire(m.form.Draft[f.Name])
	idx := 0
	for i, o := range options {
		if o.ID == cursor {
			idx = i
			break
		}
	}
	next := options[(idx+dir+len(options))%len(options)]
	m.form.Set(f.Name, schema.RefToWire(next.ID))
}

// submitForm validates the draft and runs the create or update in the
// background; the result lands as a submitDoneMsg. The form stays open
// and interactive while the call is in flight.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	scr := m.screens[m.active]
	if m.form.IsCreate() && scr.MultiTargetField != "" && len(m.multiTargets) > 0 {
		return m.submitMultiTarget(scr)
	}

	payload, ok := m.form.BeginSubmit()
	if !ok {
		// Validation problems render inside the form.
		return m, nil
	}
	idx := m.active
	id := m.form.ID
	res := scr.res
	m.saving = true
	return m, func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		var err error
		if id == 0 {
			_, err = res.Create(ctx, payload)
		} else {
			_, err = res.Update(ctx, id, payload)
		}
		return submitDoneMsg{screen: idx, err: err}
	}
}

func (m Model) applySubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.screen != m.active || m.viewMode != ViewEdit {
		return m, nil
	}
	if !m.form.Finish(msg.err) {
		// Backend errors render inside the form.
		return m, nil
	}
	m.viewMode = ViewList
	next, cmd := m.showNotice("Record saved", noticeSuccess)
	return next, tea.Batch(cmd, next.fetchList(msg.screen, next.screens[msg.screen].List.CurrentPage()))
}

// submitMultiTarget creates one record per selected target with the
// shared payload, in the background. A failure partway leaves earlier
// creates persisted and keeps the form open.
func (m Model) submitMultiTarget(scr *Screen) (tea.Model, tea.Cmd) {
	field := scr.MultiTargetField
	targets := make([]int64, 0, len(m.multiTargets))
	for id := range m.multiTargets {
		targets = append(targets, id)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

	// Stamp any target so the shared payload validates; each create
	// overrides the target field below.
	m.form.Set(field, schema.RefToWire(targets[0]))
	payload, ok := m.form.BeginSubmit()
	if !ok {
		return m, nil
	}

	idx := m.active
	res := scr.res
	m.saving = true
	return m, func() tea.Msg {
		ctx, cancel := callCtx()
		defer cancel()
		created, err := screens.BatchCreate(ctx, targets, func(ctx context.Context, target int64) error {
			p := make(map[string]any, len(payload))
			for k, v := range payload {
				p[k] = v
			}
			p[field] = target
			_, err := res.Create(ctx, p)
			return err
		})
		return batchDoneMsg{screen: idx, created: created, requested: len(targets), err: err}
	}
}

func (m Model) applyBatchDone(msg batchDoneMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.screen != m.active || m.viewMode != ViewEdit {
		return m, nil
	}
	scr := m.screens[msg.screen]
	if msg.err != nil {
		m.form.Generic = fmt.Sprintf("created %d of %d before a failure: %v", msg.created, msg.requested, msg.err)
		next, cmd := m.showNotice(m.form.Generic, noticeError)
		return next, tea.Batch(cmd, next.fetchList(msg.screen, scr.List.CurrentPage()))
	}
	m.form.Close()
	m.viewMode = ViewList
	next, cmd := m.showNotice(fmt.Sprintf("Created %d records", msg.created), noticeSuccess)
	return next, tea.Batch(cmd, next.fetchList(msg.screen, scr.List.CurrentPage()))
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
