package template

// DefaultEmailSubject is the subject line offered in the share email form.
const DefaultEmailSubject = "Check out my virtual celebrity car tour!"

// DefaultEmailBody is the message offered in the share email form.
// It uses {{variable}} placeholders for dynamic content injection.
const DefaultEmailBody = `I just experienced an amazing virtual tour of a luxury car with a celebrity guide. Check out my personalized video!

{{car}} with {{celebrity}}
{{share_url}}`

// DefaultSummary describes a finished tour on the video and share pages.
const DefaultSummary = `You toured the luxurious {{car}} with celebrity guide {{celebrity}}.
The tour showcased both exterior design elements and premium interior features.`
