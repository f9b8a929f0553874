package chat

import "strings"

// Lang is the chat language flag.
type Lang string

const (
	LangHindi   Lang = "hi"
	LangEnglish Lang = "en"
)

// ParseLang maps raw input to a chat language. Anything but "hi" or "en" yields def.
func ParseLang(raw string, def Lang) Lang {
	switch Lang(strings.ToLower(strings.TrimSpace(raw))) {
	case LangHindi:
		return LangHindi
	case LangEnglish:
		return LangEnglish
	}
	return def
}

// Toggle flips between Hindi and English.
func (l Lang) Toggle() Lang {
	if l == LangHindi {
		return LangEnglish
	}
	return LangHindi
}

const (
	greetingHindi = "नमस्कार! मैं NyaySathiAI हूं। मैं मध्य प्रदेश के कानूनी मामलों में आपकी सहायता कर सकता हूं। आप हिंदी या अंग्रेजी में प्रश्न पूछ सकते हैं।"

	replyHindi   = "यह एक नमूना उत्तर है। वास्तविक AI उत्तर के लिए, बैकएंड API से जुड़ाव आवश्यक है। आपका प्रश्न दर्ज किया गया है।"
	replyEnglish = "This is a sample response. For actual AI responses, backend API integration is required. Your question has been recorded."
)

// replyCitations are attached to every canned reply.
var replyCitations = []string{"MP Civil Procedure Code", "Consumer Protection Act"}

// CannedReply returns the assistant text for the language flag. Only "hi" selects Hindi.
func CannedReply(lang Lang) string {
	if lang == LangHindi {
		return replyHindi
	}
	return replyEnglish
}

// Citations returns the citation labels attached to canned replies.
func Citations() []string {
	return append([]string(nil), replyCitations...)
}

// QuickAction is a suggested first question offered on a fresh conversation.
type QuickAction struct {
	LabelKey string
	Label    string
	Prompt   string
}

// QuickActions lists the suggestions shown while only the greeting is present.
var QuickActions = []QuickAction{
	{LabelKey: "chat.quick.property", Label: "Property Registration", Prompt: "How to register property in MP?"},
	{LabelKey: "chat.quick.consumer", Label: "Consumer Complaint", Prompt: "How to file consumer complaint?"},
	{LabelKey: "chat.quick.employment", Label: "Employment Issues", Prompt: "What are my rights as an employee?"},
	{LabelKey: "chat.quick.notice", Label: "Legal Notice", Prompt: "How to send legal notice?"},
}
