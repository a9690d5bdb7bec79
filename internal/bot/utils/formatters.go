package utils

import (
	"fmt"
	"strings"
	"time"

	"job-deadline-bot/internal/models"
)

const (
	longDateLayout  = "January 2, 2006"
	shortDateLayout = "Jan 2, 2006"

	// MaxMessageLength is Telegram's limit for one text message.
	MaxMessageLength = 4096
)

func FormatWelcomeMessage(firstName string) string {
	name := firstName
	if name == "" {
		name = "there"
	}

	return fmt.Sprintf(`👋 Hi, *%s*\!

I keep track of your job applications and remind you before deadlines\.

*How it works:*
1️⃣ Send me a job posting link or paste the job description
2️⃣ I extract company, position, deadline, salary and location
3️⃣ The job is saved to your tracker
4️⃣ I remind you 3 days, 1 day and on the day of the deadline

*Commands:*
/list \- show tracked jobs
/applied \<n\> \- mark job n as applied
/help \- detailed help`, EscapeMarkdown(name))
}

func FormatHelpMessage() string {
	return `*📖 Help*

*Adding a job:*
• Send a link: https://example\.com/jobs/123
• Or paste the full job description text
I try the page first and fall back to AI when no deadline is found\.

*Commands:*
/start \- welcome message
/list \- all tracked jobs with days left
/applied \<n\> \- mark job number n as applied
/help \- this message

*Reminders:*
Every morning I check open jobs and message you when a deadline is 3 days, 1 day or 0 days away\. Applied jobs are skipped\.

*Tip:* if a site blocks me, copy and paste the job description instead\.`
}

// FormatJobAdded confirms a saved record and lists what extraction missed.
func FormatJobAdded(rec *models.JobRecord, missing []string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString("✅ *Job added\\!*\n\n")
	sb.WriteString(fmt.Sprintf("🏢 *Company:* %s\n", EscapeMarkdown(orUnknown(rec.Company))))
	sb.WriteString(fmt.Sprintf("💼 *Position:* %s\n", EscapeMarkdown(orUnknown(rec.Position))))

	if days, ok := rec.DaysLeft(now); ok {
		sb.WriteString(fmt.Sprintf("📅 *Deadline:* %s \\(%s\\)\n",
			EscapeMarkdown(rec.Deadline.Format(longDateLayout)),
			EscapeMarkdown(DaysLeftText(days)),
		))
	} else {
		sb.WriteString("📅 *Deadline:* not found\n")
	}

	if rec.Salary != "" {
		sb.WriteString(fmt.Sprintf("💰 *Salary:* %s\n", EscapeMarkdown(rec.Salary)))
	}

	if rec.Location != "" {
		sb.WriteString(fmt.Sprintf("📍 *Location:* %s\n", EscapeMarkdown(rec.Location)))
	}

	if rec.Link != "" {
		sb.WriteString(fmt.Sprintf("🔗 *Link:* %s\n", EscapeMarkdown(rec.Link)))
	}

	if len(missing) > 0 {
		sb.WriteString(fmt.Sprintf("\n⚠️ Could not find: %s\\.", EscapeMarkdown(strings.Join(missing, ", "))))

		if rec.Deadline == nil {
			sb.WriteString(" Without a deadline I cannot remind you, add it in the tracker if you know it\\.")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatReminder renders the notification for a record daysLeft days before
// its deadline.
func FormatReminder(rec *models.JobRecord, daysLeft int) string {
	var sb strings.Builder

	switch daysLeft {
	case 0:
		sb.WriteString("🔔 *DEADLINE TODAY\\!*\n\n⏰ Apply today\\!\n\n")
	case 1:
		sb.WriteString("🔔 *DEADLINE REMINDER*\n\n⏰ 1 day left to apply\\!\n\n")
	default:
		sb.WriteString(fmt.Sprintf("🔔 *DEADLINE REMINDER*\n\n⏰ %d days left to apply\\!\n\n", daysLeft))
	}

	if rec.Company != "" {
		sb.WriteString(fmt.Sprintf("🏢 %s\n", EscapeMarkdown(rec.Company)))
	}

	if rec.Position != "" {
		sb.WriteString(fmt.Sprintf("💼 %s\n", EscapeMarkdown(rec.Position)))
	}

	if rec.Deadline != nil {
		sb.WriteString(fmt.Sprintf("📅 Deadline: %s\n", EscapeMarkdown(rec.Deadline.Format(longDateLayout))))
	}

	sb.WriteString(fmt.Sprintf("\n\\#%d in your list", rec.Index))

	return sb.String()
}

// FormatDeadlineList renders every record with its current index.
func FormatDeadlineList(records []*models.JobRecord, now time.Time) string {
	if len(records) == 0 {
		return "📋 No jobs tracked yet\\.\n\nSend me a job link to get started\\!"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *Your jobs* \\(%d\\)\n\n", len(records)))

	for _, rec := range records {
		sb.WriteString(fmt.Sprintf("*%d\\.* %s @ %s\n",
			rec.Index,
			EscapeMarkdown(orUnknown(rec.Position)),
			EscapeMarkdown(orUnknown(rec.Company)),
		))

		status := string(rec.Status)
		if rec.IsApplied() {
			status += " ✓"
		}

		if days, ok := rec.DaysLeft(now); ok {
			sb.WriteString(fmt.Sprintf("   %s %s \\(%s\\) · %s\n\n",
				urgencyIcon(models.UrgencyFor(days, true)),
				EscapeMarkdown(rec.Deadline.Format(shortDateLayout)),
				EscapeMarkdown(DaysLeftText(days)),
				EscapeMarkdown(status),
			))
		} else {
			sb.WriteString(fmt.Sprintf("   📅 no deadline · %s\n\n", EscapeMarkdown(status)))
		}
	}

	sb.WriteString("Mark one as applied with /applied \\<n\\>")

	return sb.String()
}

func FormatFetchFailedMessage() string {
	return `⚠️ I could not read this page\. The site may require login, block automated access or be temporarily down\.

💡 Copy and paste the job description text and I will extract the details from it\.`
}

func FormatNoJobPostingMessage() string {
	return `🤔 I did not find a link or a job description in your message\.

Send a job posting link like https://example\.com/jobs/123 or paste the full description\.`
}

// DaysLeftText describes a days-left value in words.
func DaysLeftText(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "1 day left"
	case days > 1:
		return fmt.Sprintf("%d days left", days)
	case days == -1:
		return "1 day overdue"
	default:
		return fmt.Sprintf("%d days overdue", -days)
	}
}

func urgencyIcon(u models.Urgency) string {
	switch u {
	case models.UrgencyUrgent:
		return "🔴"
	case models.UrgencySoon:
		return "🟡"
	default:
		return "🟢"
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}

// EscapeMarkdown escapes special characters for Telegram MarkdownV2
func EscapeMarkdown(text string) string {
	// _ * [ ] ( ) ~ ` > # + - = | { } . ! \
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"]", "\\]",
		"(", "\\(",
		")", "\\)",
		"~", "\\~",
		"`", "\\`",
		">", "\\>",
		"#", "\\#",
		"+", "\\+",
		"-", "\\-",
		"=", "\\=",
		"|", "\\|",
		"{", "\\{",
		"}", "\\}",
		".", "\\.",
		"!", "\\!",
	)

	return replacer.Replace(text)
}

// SplitMessage cuts text into chunks under limit, breaking on blank lines
// where possible.
func SplitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder

	for _, block := range strings.SplitAfter(text, "\n\n") {
		if current.Len()+len(block) > limit && current.Len() > 0 {
			chunks = append(chunks, strings.TrimRight(current.String(), "\n"))
			current.Reset()
		}
		for len(block) > limit {
			chunks = append(chunks, block[:limit])
			block = block[limit:]
		}
		current.WriteString(block)
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimRight(current.String(), "\n"))
	}

	return chunks
}
