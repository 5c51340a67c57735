package dto

// Group is the transport shape for a group. SubGroups is populated for
// hierarchical listings; it is nil for flat lookups.
type Group struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Path          string  `json:"path"`
	ParentGroupID string  `json:"parent_group_id,omitempty"`
	SubGroups     []Group `json:"sub_groups,omitempty"`
}
