package domain

// DependentRecordRef is a stored record that must be removed because it
// references a deleted entity.
type DependentRecordRef struct {
	// Path is the fully-qualified document path.
	Path string

	// Reason records which rule discovered the record.
	Reason RefReason
}

// CleanupPlan is everything one invocation intends to remove.
// Building a plan never mutates store state.
type CleanupPlan struct {
	// EntityID identifies the deleted entity.
	EntityID string

	// Actions are the planned steps, in planning order.
	Actions []CleanupAction

	// Records are the dependent records resolved from the record actions.
	Records []DependentRecordRef

	// Failures holds discovery steps that could not be resolved this run.
	// Their records are missing from Records.
	Failures []ActionResult
}

// NewCleanupPlan creates an unresolved plan for the given actions.
func NewCleanupPlan(entityID string, actions []CleanupAction) *CleanupPlan {
	return &CleanupPlan{
		EntityID: entityID,
		Actions:  actions,
	}
}

// ObjectRemoval returns the planned object removal, or nil if there is none.
func (p *CleanupPlan) ObjectRemoval() *CleanupAction {
	for i := range p.Actions {
		if p.Actions[i].Type == ActionRemoveObject {
			return &p.Actions[i]
		}
	}
	return nil
}

// AddRecords appends resolved dependent records.
func (p *CleanupPlan) AddRecords(refs ...DependentRecordRef) {
	p.Records = append(p.Records, refs...)
}

// AddFailure records a discovery step that failed.
func (p *CleanupPlan) AddFailure(result ActionResult) {
	p.Failures = append(p.Failures, result)
}

// IsEmpty returns true if the plan removes nothing.
func (p *CleanupPlan) IsEmpty() bool {
	return p.ObjectRemoval() == nil && len(p.Records) == 0
}

// CountByReason returns the number of records per reason.
func (p *CleanupPlan) CountByReason() map[RefReason]int {
	counts := make(map[RefReason]int)
	for _, ref := range p.Records {
		counts[ref.Reason]++
	}
	return counts
}
