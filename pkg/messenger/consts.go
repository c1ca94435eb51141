package messenger

// ButtonType discriminates the button union on the wire.
type ButtonType string

const (
	ButtonTypePostback    ButtonType = "postback"
	ButtonTypeWebURL      ButtonType = "web_url"
	ButtonTypeCall        ButtonType = "phone_number"
	ButtonTypeShare       ButtonType = "element_share"
	ButtonTypeAccountLink ButtonType = "account_link"
)

// TemplateType discriminates structured message payloads.
type TemplateType string

const (
	TemplateTypeButton  TemplateType = "button"
	TemplateTypeGeneric TemplateType = "generic"
	TemplateTypeList    TemplateType = "list"
	TemplateTypeReceipt TemplateType = "receipt"
)

// AttachmentType is the declared type of an inbound or outbound attachment.
type AttachmentType string

const (
	AttachmentTypeImage    AttachmentType = "image"
	AttachmentTypeAudio    AttachmentType = "audio"
	AttachmentTypeVideo    AttachmentType = "video"
	AttachmentTypeFile     AttachmentType = "file"
	AttachmentTypeTemplate AttachmentType = "template"
)

// NotificationType controls how the platform surfaces a push for a send.
type NotificationType string

const (
	NotificationRegular    NotificationType = "REGULAR"
	NotificationSilentPush NotificationType = "SILENT_PUSH"
	NotificationNoPush     NotificationType = "NO_PUSH"
)

// MessagingType declares why an outbound message is being sent.
type MessagingType string

const (
	MessagingTypeResponse   MessagingType = "RESPONSE"
	MessagingTypeUpdate     MessagingType = "UPDATE"
	MessagingTypeMessageTag MessagingType = "MESSAGE_TAG"
)

// ContentType discriminates quick replies.
type ContentType string

const (
	ContentTypeText     ContentType = "text"
	ContentTypeLocation ContentType = "location"
)

// ActionType is a sender action (typing indicator / read receipt signal).
type ActionType string

const (
	ActionTypingOn  ActionType = "typing_on"
	ActionTypingOff ActionType = "typing_off"
	ActionMarkSeen  ActionType = "mark_seen"
)

// WebviewHeightRatio sizes the webview opened by a web_url button.
type WebviewHeightRatio string

const (
	WebviewCompact WebviewHeightRatio = "compact"
	WebviewTall    WebviewHeightRatio = "tall"
	WebviewFull    WebviewHeightRatio = "full"
)

// TopElementStyle controls how a list template renders its first element.
type TopElementStyle string

const (
	TopElementStyleLarge   TopElementStyle = "large"
	TopElementStyleCompact TopElementStyle = "compact"
)

// ImageAspectRatio controls generic template image rendering.
type ImageAspectRatio string

const (
	AspectRatioHorizontal ImageAspectRatio = "horizontal"
	AspectRatioSquare     ImageAspectRatio = "square"
)

// UserProfileField names a field of the user profile endpoint.
type UserProfileField string

const (
	ProfileFieldFirstName  UserProfileField = "first_name"
	ProfileFieldLastName   UserProfileField = "last_name"
	ProfileFieldProfilePic UserProfileField = "profile_pic"
	ProfileFieldLocale     UserProfileField = "locale"
	ProfileFieldTimezone   UserProfileField = "timezone"
	ProfileFieldGender     UserProfileField = "gender"
)

// defaultProfileFields is used when a profile fetch names no fields.
var defaultProfileFields = []UserProfileField{
	ProfileFieldFirstName,
	ProfileFieldLastName,
	ProfileFieldProfilePic,
}
