package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

const (
	SubscriberStatusPending      = "pending"
	SubscriberStatusActive       = "active"
	SubscriberStatusUnsubscribed = "unsubscribed"
)

const (
	NewsletterStatusDraft     = "draft"
	NewsletterStatusScheduled = "scheduled"
	NewsletterStatusSent      = "sent"
)

// Cloudinary folders for the two upload surfaces.
const (
	FolderAvatars    = "users/avatars"
	FolderBlogImages = "blog/images"
)
