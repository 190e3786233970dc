package repositories

// ===== SHARED FILTER STRUCTS =====

// Scope is a typed row-visibility predicate. It is constructed exclusively by
// the access rules in the service layer and applied verbatim by repositories,
// so the authorization rule is testable without touching storage and no query
// text is ever assembled from request input.
type Scope struct {
	Column string // "doctor_id" or "patient_id"
	Value  string // caller's user id
}

type NotificationFilters struct {
	UnreadOnly bool
	Limit      int
}

// DefaultNotificationPageSize caps notification listings.
const DefaultNotificationPageSize = 20
