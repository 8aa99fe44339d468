package ledger

import "splitledger/internal/models"

type scopeKind int

const (
	scopeOneToOne scopeKind = iota
	scopeGroup
	scopeAny
)

// Scope selects which expenses and settlements take part in a netting pass.
type Scope struct {
	kind  scopeKind
	group models.GroupID
}

// OneToOne selects records that carry no group id.
func OneToOne() Scope { return Scope{kind: scopeOneToOne} }

// InGroup selects records that belong to the given group.
func InGroup(id models.GroupID) Scope { return Scope{kind: scopeGroup, group: id} }

// AnyGroup applies no group filter at all.
func AnyGroup() Scope { return Scope{kind: scopeAny} }

// Includes reports whether a record with the given group id falls in scope.
func (s Scope) Includes(groupID models.GroupID) bool {
	switch s.kind {
	case scopeOneToOne:
		return groupID == ""
	case scopeGroup:
		return groupID == s.group
	default:
		return true
	}
}

func (s Scope) String() string {
	switch s.kind {
	case scopeOneToOne:
		return "one-to-one"
	case scopeGroup:
		return "group:" + string(s.group)
	default:
		return "any"
	}
}
