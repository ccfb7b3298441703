// Package policy holds the access-control decisions for the application.
// Every function is pure: caller identity plus target in, allow/deny with a
// reason out. Handlers translate reasons into redirects; nothing here touches
// storage or the request.
package policy

import "quill/internal/models"

// Reason explains a denial.
type Reason string

const (
	// ReasonAuthenticationRequired means the caller is anonymous and the
	// handler should redirect to the login flow with a return target.
	ReasonAuthenticationRequired Reason = "authentication_required"
	// ReasonNotOwner means the caller is not the post's author.
	ReasonNotOwner Reason = "not_owner"
	// ReasonSelfFollow means the caller tried to follow themselves.
	ReasonSelfFollow Reason = "self_follow"
	// ReasonAlreadyFollowing means the follow edge already exists.
	ReasonAlreadyFollowing Reason = "already_following"
	// ReasonNotFollowing means there is no follow edge to remove.
	ReasonNotFollowing Reason = "not_following"
)

// Decision is the outcome of a policy check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow returns a permitting decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denying decision with the given reason.
func Deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

// CanWrite decides whether the caller may perform any authenticated write
// (create post, group, comment, profile; follow; unfollow). Zero means
// anonymous.
func CanWrite(callerID uint) Decision {
	if callerID == 0 {
		return Deny(ReasonAuthenticationRequired)
	}
	return Allow()
}

// CanEditPost decides whether the caller may view the edit form for, or
// mutate, the given post.
func CanEditPost(callerID uint, post *models.Post) Decision {
	if callerID == 0 {
		return Deny(ReasonAuthenticationRequired)
	}
	if post.AuthorID != callerID {
		return Deny(ReasonNotOwner)
	}
	return Allow()
}

// CanFollow decides whether the caller may create a follow edge to authorID.
// alreadyFollowing is the store's answer for the pair; a duplicate insert that
// races past this check resolves to the same denial at the storage layer.
func CanFollow(callerID, authorID uint, alreadyFollowing bool) Decision {
	if callerID == 0 {
		return Deny(ReasonAuthenticationRequired)
	}
	if callerID == authorID {
		return Deny(ReasonSelfFollow)
	}
	if alreadyFollowing {
		return Deny(ReasonAlreadyFollowing)
	}
	return Allow()
}

// CanUnfollow decides whether the caller may remove a follow edge.
func CanUnfollow(callerID uint, following bool) Decision {
	if callerID == 0 {
		return Deny(ReasonAuthenticationRequired)
	}
	if !following {
		return Deny(ReasonNotFollowing)
	}
	return Allow()
}
