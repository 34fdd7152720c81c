package openai

import (
	"fmt"
	"strings"

	"github.com/medassist/docfinder/internal/domain/providers"
)

const systemPrompt = `You are a friendly and professional medical assistant chatbot. Your role is to help users find suitable doctors in Islamabad and Lahore, Pakistan.

IMPORTANT RULES:
1. Be conversational, warm, and natural
2. ONLY recommend doctors from the list provided in each request
3. NEVER invent or guess doctor information
4. Vary your responses - do not use the same format every time
5. Be concise but informative
6. If contact, timings, or hospital info is missing, say "Contact details available at clinic" instead of "Not provided"

When recommending doctors, introduce them naturally, include key details (name, fee, experience, reviews), and explain why each one is a good fit.`

// buildComposeUserPrompt renders the bounded payload: the user's message
// plus the ranked records the reply must be phrased from.
func buildComposeUserPrompt(req providers.ComposeRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User asked: %q\n", req.UserText)

	b.WriteString("\nDoctors from our database:\n")
	for i, sd := range req.Doctors {
		d := sd.Doctor
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, d.Name)
		fmt.Fprintf(&b, "   - %s in %s\n", d.Specialty, d.City)
		if d.Specializations != "" {
			fmt.Fprintf(&b, "   - Specializations: %s\n", d.Specializations)
		}
		if d.Qualifications != "" {
			fmt.Fprintf(&b, "   - Qualifications: %s\n", d.Qualifications)
		}
		fmt.Fprintf(&b, "   - Experience: %s\n", d.Experience)
		fmt.Fprintf(&b, "   - Reviews: %d\n", d.Reviews)
		fmt.Fprintf(&b, "   - Fee: Rs.%d\n", d.Fee)
	}

	b.WriteString(`
Respond naturally and conversationally. Acknowledge the request, recommend the doctors above, and highlight why each is a good fit.

IMPORTANT:
- Only use information from the doctors listed above
- Never invent information
- Vary how you present information each time`)

	return b.String()
}
