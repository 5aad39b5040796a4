package usecase

// DefaultChannel is used whenever no explicit channel and no recognized
// notification type is available. Channel resolution never yields an
// empty identifier.
const DefaultChannel = "general_channel"

var channelByType = map[string]string{
	"comment": "comment_channel",
	"like":    "like_channel",
	"follow":  "follow_channel",
	"message": "message_channel",
	"post":    "post_channel",
}

// ResolveChannel picks the notification channel for a request. An explicit
// channel wins; otherwise the notification type is mapped through a fixed
// table; unrecognized or absent types fall back to DefaultChannel.
func ResolveChannel(explicit, typeTag string) string {
	if explicit != "" {
		return explicit
	}
	if channel, ok := channelByType[typeTag]; ok {
		return channel
	}
	return DefaultChannel
}
