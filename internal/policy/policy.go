// Package policy maps trust tiers to their moderation capabilities.
package policy

import "medlex/internal/models"

// capability is the static permission set of a single tier.
type capability struct {
	applyDirectly bool
	reviewContent bool
	reviewRoles   bool
}

var capabilities = map[models.Role]capability{
	models.RoleUser:   {},
	models.RoleEditor: {applyDirectly: true, reviewContent: true},
	models.RoleAdmin:  {applyDirectly: true, reviewContent: true, reviewRoles: true},
}

// Valid reports whether role is a member of the closed tier enum.
func Valid(role models.Role) bool {
	_, ok := capabilities[role]
	return ok
}

// CanApplyDirectly reports whether the tier commits dictionary mutations
// immediately instead of queueing them for review.
func CanApplyDirectly(role models.Role) bool {
	return capabilities[role].applyDirectly
}

// CanReviewContent reports whether the tier may list and resolve pending
// dictionary change requests.
func CanReviewContent(role models.Role) bool {
	return capabilities[role].reviewContent
}

// CanReviewRoles reports whether the tier may list and resolve pending
// role-change requests.
func CanReviewRoles(role models.Role) bool {
	return capabilities[role].reviewRoles
}
