package enrich

import "fmt"

// profilePrompt asks for a structured guest profile from a chat transcript.
// The model must answer with bare JSON so ExtractJSONObject can parse it.
func profilePrompt(chatText string) string {
	return fmt.Sprintf(`You are a hospitality data analyst. Based on this hotel guest chat:

%s

Identify:
1. client_type
2. client_interests (list)
3. client_traits (list)

Respond with **only** JSON (no markdown), e.g.:
{
  "client_type": "Business Traveler",
  "client_interests": ["Spa", "Dining"],
  "client_traits": ["Luxury-seeking", "Efficient"]
}`, chatText)
}

// categoryPrompt asks for a short marketing category label from an already
// extracted profile.
func categoryPrompt(clientType, interests, traits string) string {
	return fmt.Sprintf(`You are a hotel marketing analyst.
Based on the following client profile, determine a short descriptive Client Category label or a few keywords.

Client Type: %s
Client Interests: %s
Client Traits: %s

Respond ONLY with plain text listing 1-3 descriptive categories or keywords (comma-separated), e.g.:
Leisure, Family, Spa`, clientType, interests, traits)
}
