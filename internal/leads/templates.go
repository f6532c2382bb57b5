package leads

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildPrompt returns an instruction for a site builder to create a website for b.
func BuildPrompt(b Business) string {
	category := b.Category
	if category == "" {
		category = "General Business"
	}
	phone := b.PhoneNumber
	if phone == "" {
		phone = "Not listed"
	}

	return fmt.Sprintf(`Build a business website for "%s" located at "%s". 
Industry: %s. 
Their phone number is %s. 
They currently do not have a website. 
Create a modern, responsive, SEO-optimized website suitable for their business. Include sections for Home, About, Services, and Contact.`,
		b.Name, b.Address, category, phone)
}

// OutreachMessage returns a short cold email pitching a website to b.
// Well rated businesses (above 4.0) get a rating compliment, the rest get
// a mention of where they are listed.
func OutreachMessage(b Business) string {
	var socialProof string
	if b.Rating != nil && *b.Rating > 4.0 {
		socialProof = fmt.Sprintf("I noticed you have a fantastic %s-star rating on Google", FormatRating(*b.Rating))
	} else {
		socialProof = fmt.Sprintf("I found your business listed in %s", locality(b.Address))
	}

	category := b.Category
	if category == "" {
		category = "business"
	}

	return fmt.Sprintf(`Subject: Quick question about %[1]s

Hi %[1]s team,

%[2]s, but I was surprised to see that you don't have a website listed.

I help local %[3]s businesses like yours establish a professional online presence to attract more customers. 

In today's digital age, 97%% of consumers search online for local services. Without a website, you might be missing out on valuable leads that are going to competitors.

I'd love to build you a modern, mobile-friendly website that highlights your services and reviews.

Are you open to a quick 5-minute chat this week to discuss how we can get %[1]s online?

Best regards,
[Your Name]
Web Developer`, b.Name, socialProof, category)
}

// locality is the second comma separated part of an address, e.g. the city
// in "123 Main St, Springfield, USA". The segment is used as split, leading
// space included.
func locality(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) < 2 || parts[1] == "" {
		return "the area"
	}
	return parts[1]
}

// FormatRating renders a rating with the shortest exact representation
func FormatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
