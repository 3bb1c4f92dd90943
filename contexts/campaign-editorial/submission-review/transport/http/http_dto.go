package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ReviewSubmissionRequest struct {
	Action   string   `json:"action"`
	Feedback string   `json:"feedback"`
	Reasons  []string `json:"reasons"`
	Caption  string   `json:"caption"`
}

type UpdatePostingLinkRequest struct {
	PostingLink string `json:"posting_link"`
}

type ReviewPostingLinkRequest struct {
	Action  string   `json:"action"`
	Reasons []string `json:"reasons"`
}

type ReviewPitchRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

type MediaItemDTO struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Feedback string `json:"feedback,omitempty"`
	Status   string `json:"status,omitempty"`
}

type FeedbackDTO struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Content       string   `json:"content"`
	Reasons       []string `json:"reasons"`
	AuthorName    string   `json:"author_name,omitempty"`
	AuthorRole    string   `json:"author_role,omitempty"`
	SentToCreator bool     `json:"sent_to_creator"`
	Label         string   `json:"label"`
	ActionLabel   string   `json:"action_label"`
	CreatedAt     string   `json:"created_at,omitempty"`
}

type FlagsDTO struct {
	PendingReview         bool `json:"pending_review"`
	IsClientFeedback      bool `json:"is_client_feedback"`
	ClientVisible         bool `json:"client_visible"`
	HasPostingLink        bool `json:"has_posting_link"`
	HasPendingPostingLink bool `json:"has_pending_posting_link"`
	IsApproved            bool `json:"is_approved"`
}

type PostingLinkPanelDTO struct {
	Visible          bool `json:"visible"`
	TakesOver        bool `json:"takes_over"`
	Pending          bool `json:"pending"`
	CanSubmit        bool `json:"can_submit"`
	CanApprove       bool `json:"can_approve"`
	CanRequestChange bool `json:"can_request_change"`
	Disabled         bool `json:"disabled"`
}

type ActionPanelDTO struct {
	Area                    string              `json:"area"`
	Mode                    string              `json:"mode"`
	ShowFeedbackActions     bool                `json:"show_feedback_actions"`
	ShowApproveButton       bool                `json:"show_approve_button"`
	ApproveLabel            string              `json:"approve_label"`
	ShowRequestChangeButton bool                `json:"show_request_change_button"`
	ShowReasonsDropdown     bool                `json:"show_reasons_dropdown"`
	ShowChangeRequestForm   bool                `json:"show_change_request_form"`
	ShowSendToCreator       bool                `json:"show_send_to_creator"`
	Disabled                bool                `json:"disabled"`
	AllowedActions          []string            `json:"allowed_actions"`
	PostingLink             PostingLinkPanelDTO `json:"posting_link"`
}

type ToastDTO struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type SubmissionViewResponse struct {
	SubmissionID    string         `json:"submission_id"`
	CampaignID      string         `json:"campaign_id"`
	CampaignType    string         `json:"campaign_type"`
	Status          string         `json:"status"`
	PostingLink     string         `json:"posting_link,omitempty"`
	Caption         string         `json:"caption,omitempty"`
	MediaKind       string         `json:"media_kind"`
	MediaHidden     bool           `json:"media_hidden"`
	Media           []MediaItemDTO `json:"media"`
	Flags           FlagsDTO       `json:"flags"`
	Panel           ActionPanelDTO `json:"panel"`
	Feedback        []FeedbackDTO  `json:"feedback"`
	DefaultFeedback string         `json:"default_feedback"`
	InitialReasons  []string       `json:"initial_reasons"`
	ChangeReasons   []string       `json:"change_reasons"`
	LockState       string         `json:"lock_state"`
	Toasts          []ToastDTO     `json:"toasts"`
}

type ReviewSubmissionResponse struct {
	Action   string   `json:"action"`
	Status   string   `json:"status"`
	Feedback string   `json:"feedback"`
	Reasons  []string `json:"reasons"`
}

type PostingLinkResponse struct {
	Status   string `json:"status"`
	Platform string `json:"platform"`
	PostID   string `json:"post_id,omitempty"`
}

type ReviewPitchResponse struct {
	Action     string `json:"action"`
	APIVersion string `json:"api_version"`
}
