// Package chatbot answers user questions about the platform with a
// keyword-matching assistant. There is no model behind it; the replies are
// canned pointers to the right feature.
package chatbot

import "strings"

type rule struct {
	keywords []string
	reply    string
}

// Rules are checked in order; the first keyword hit wins. "help" is matched
// before "help line" on purpose so disaster questions beat the hotline reply.
var rules = []rule{
	{
		keywords: []string{"sos", "emergency"},
		reply:    "SOS: use the SOS form to report an emergency with your location. Admins and volunteers will respond quickly. Submit at /sos.",
	},
	{
		keywords: []string{"help", "disaster"},
		reply:    "Emergency help: for floods, earthquakes or fires, submit an SOS alert. Check /resources for shelters and supplies. Stay safe!",
	},
	{
		keywords: []string{"weather", "prediction"},
		reply:    "Disaster prediction: use the risk assessment tool at /predict to check conditions for your location.",
	},
	{
		keywords: []string{"login", "register"},
		reply:    "Account help: log in at /auth/login or register at /auth/register.",
	},
	{
		keywords: []string{"contact", "help line"},
		reply:    "Emergency hotline: 90023 90023.",
	},
}

const fallbackReply = "I'm sorry, I don't have specific advice for that. For emergencies, submit an SOS or contact local authorities. What else can I help with?"

// Respond picks the canned reply for the message, case-insensitively.
func Respond(message string) string {
	lower := strings.ToLower(strings.TrimSpace(message))
	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(lower, keyword) {
				return r.reply
			}
		}
	}
	return fallbackReply
}
