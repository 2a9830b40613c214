package model

type AccessReason string

const (
	AccessReasonDemoLecture       AccessReason = "demo_lecture"
	AccessReasonAlreadyAccessible AccessReason = "already_accessible"
	AccessReasonTimeWindowOpen    AccessReason = "time_window_open"
	AccessReasonLiveNow           AccessReason = "live_now"
	AccessReasonLockedFuture      AccessReason = "locked_future"
	AccessReasonLockedNotToday    AccessReason = "locked_not_today"
	AccessReasonAPIError          AccessReason = "api_error"
)

// AccessDecision is computed per check and never persisted.
type AccessDecision struct {
	Accessible bool         `json:"accessible"`
	Reason     AccessReason `json:"reason"`
}
