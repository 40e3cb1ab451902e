package models

import (
	"strings"
	"time"
)

// Singleton is the embedded base for configuration rows of which at most
// one instance may exist per table. The settings store pins every save to
// the existing row's id, so the primary key never grows past the first row.
type Singleton struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetID is used by the settings store to reuse the existing row on save.
func (s *Singleton) SetID(id uint) { s.ID = id }

// RowID reports the persisted row id; zero means the instance is a default
// that has never been saved.
func (s *Singleton) RowID() uint { return s.ID }

// RowMeta exposes the persisted row metadata to the settings store.
func (s *Singleton) RowMeta() Singleton { return *s }

// StripeConfig holds Stripe API credentials.
type StripeConfig struct {
	Singleton
	IsActive       bool   `gorm:"default:false" json:"is_active"`
	PublishableKey string `gorm:"size:255" json:"publishable_key"` // pk_test_... or pk_live_...
	SecretKey      string `gorm:"size:255" json:"secret_key"`      // sk_test_... or sk_live_...
	WebhookSecret  string `gorm:"size:255" json:"webhook_secret"`  // whsec_...
	IsLiveMode     bool   `gorm:"default:false" json:"is_live_mode"`
}

func (StripeConfig) TableName() string { return "stripe_configs" }

func (c *StripeConfig) Configured() bool {
	return c.IsActive && c.SecretKey != ""
}

// ResendConfig holds Resend email API credentials and sender identity.
type ResendConfig struct {
	Singleton
	IsActive       bool       `gorm:"default:false" json:"is_active"`
	APIKey         string     `gorm:"size:255" json:"api_key"` // re_...
	FromEmail      string     `gorm:"size:255" json:"from_email"`
	FromName       string     `gorm:"size:255" json:"from_name"`
	LastTestAt     *time.Time `json:"last_test_at"`
	LastTestStatus string     `gorm:"size:50" json:"last_test_status"` // "", success, failed
}

func (ResendConfig) TableName() string { return "resend_configs" }

func (c *ResendConfig) Configured() bool {
	return c.IsActive && c.APIKey != ""
}

// Sender formats the From header: "Name <email>" or the bare address.
func (c *ResendConfig) Sender() string {
	if c.FromName != "" {
		return c.FromName + " <" + c.FromEmail + ">"
	}
	return c.FromEmail
}

// EditorConfig holds rich-text editor (TinyMCE Cloud) settings served to
// the admin frontend.
type EditorConfig struct {
	Singleton
	IsActive bool   `gorm:"default:false" json:"is_active"`
	APIKey   string `gorm:"size:255" json:"api_key"`
	Height   int    `gorm:"default:500" json:"height"`
	Menubar  string `gorm:"size:255" json:"menubar"`
	Plugins  string `gorm:"type:text" json:"plugins"` // space-separated
	Toolbar  string `gorm:"type:text" json:"toolbar"`
}

func (EditorConfig) TableName() string { return "editor_configs" }

func (c *EditorConfig) Configured() bool {
	return c.IsActive && c.APIKey != ""
}

// EditorOptions is the fully-resolved editor configuration with the options
// the frontend recognizes. Kept as a fixed struct rather than a free-form
// map so the contract stays checkable.
type EditorOptions struct {
	Height         int      `json:"height"`
	Menubar        string   `json:"menubar"`
	Plugins        []string `json:"plugins"`
	Toolbar        string   `json:"toolbar"`
	ContentCSS     string   `json:"content_css"`
	RelativeURLs   bool     `json:"relative_urls"`
	ConvertURLs    bool     `json:"convert_urls"`
	Branding       bool     `json:"branding"`
	Promotion      bool     `json:"promotion"`
	ReferrerPolicy string   `json:"referrer_policy"`
}

func (c *EditorConfig) Options() EditorOptions {
	return EditorOptions{
		Height:         c.Height,
		Menubar:        c.Menubar,
		Plugins:        strings.Fields(c.Plugins),
		Toolbar:        c.Toolbar,
		ContentCSS:     "default",
		RelativeURLs:   false,
		ConvertURLs:    true,
		Branding:       false,
		Promotion:      false,
		ReferrerPolicy: "origin",
	}
}

// ScriptURL returns the editor CDN URL for the configured API key, or ""
// when no key is set.
func (c *EditorConfig) ScriptURL() string {
	if c.APIKey == "" {
		return ""
	}
	return "https://cdn.tiny.cloud/1/" + c.APIKey + "/tinymce/7/tinymce.min.js"
}

// CloudinaryConfig holds media storage credentials and upload defaults.
type CloudinaryConfig struct {
	Singleton
	IsActive      bool   `gorm:"default:false" json:"is_active"`
	CloudName     string `gorm:"size:255" json:"cloud_name"`
	APIKey        string `gorm:"size:255" json:"api_key"`
	APISecret     string `gorm:"size:255" json:"api_secret"`
	DefaultFolder string `gorm:"size:255;default:'uploads'" json:"default_folder"`
	AutoOptimize  bool   `gorm:"default:true" json:"auto_optimize"`
}

func (CloudinaryConfig) TableName() string { return "cloudinary_configs" }

func (c *CloudinaryConfig) Configured() bool {
	return c.IsActive && c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Defaults returned by the settings store when a row has never been saved.

func DefaultStripeConfig() *StripeConfig { return &StripeConfig{} }

func DefaultResendConfig() *ResendConfig { return &ResendConfig{} }

func DefaultEditorConfig() *EditorConfig {
	return &EditorConfig{
		Height:  500,
		Menubar: "file edit view insert format tools table help",
		Plugins: "advlist autolink lists link image charmap preview anchor searchreplace visualblocks code fullscreen insertdatetime media table help wordcount",
		Toolbar: "undo redo | blocks | bold italic forecolor | alignleft aligncenter alignright alignjustify | bullist numlist outdent indent | removeformat | image media link | code | help",
	}
}

func DefaultCloudinaryConfig() *CloudinaryConfig {
	return &CloudinaryConfig{DefaultFolder: "uploads", AutoOptimize: true}
}
