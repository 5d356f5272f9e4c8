package utils

import (
	"bytes"
	"fmt"
	"html/template"

	"teamup/models"
)

// Embedded email templates, keyed by event.
var emailTemplates = map[string]string{
	"need_created": `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Your team post is live</h2>
    <p>Hi {{.OwnerName}},</p>
    <p>Your post <strong>{{.Title}}</strong> is now visible to other participants.
    You will be notified here and by email whenever someone applies.</p>
    <p><a href="{{.ActionURL}}">View your post</a></p>
</body>
</html>`,

	"application_received": `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>New application for {{.Title}}</h2>
    <p>Hi {{.OwnerName}},</p>
    <p><strong>{{.ApplicantName}}</strong> wants to join your team:</p>
    <blockquote style="border-left: 3px solid #3498db; padding-left: 12px; color: #555;">{{.Message}}</blockquote>
    <p><a href="{{.ActionURL}}">Review the application</a></p>
</body>
</html>`,

	"application_confirmation": `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Application sent</h2>
    <p>Hi {{.ApplicantName}},</p>
    <p>Your application for <strong>{{.Title}}</strong> was delivered to the team owner.
    You will hear back here once they decide.</p>
</body>
</html>`,

	"application_accepted": `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>You are in!</h2>
    <p>Hi {{.ApplicantName}},</p>
    <p>Your application for <strong>{{.Title}}</strong> was accepted.</p>
    {{if .ContactHint}}<p>The owner left a way to reach the team:</p>
    <blockquote style="border-left: 3px solid #2ecc71; padding-left: 12px; color: #555;">{{.ContactHint}}</blockquote>{{end}}
</body>
</html>`,

	"application_rejected": `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Application update</h2>
    <p>Hi {{.ApplicantName}},</p>
    <p>Your application for <strong>{{.Title}}</strong> was not accepted this time.
    There are plenty of other teams still looking.</p>
</body>
</html>`,
}

func renderTemplate(name string, data interface{}) (string, error) {
	tmplContent, ok := emailTemplates[name]
	if !ok {
		return "", fmt.Errorf("template '%s' not found", name)
	}
	tmpl, err := template.New(name).Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("error parsing template: %v", err)
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("error executing template: %v", err)
	}
	return body.String(), nil
}

func (d *Dispatcher) needURL(needID uint) string {
	return fmt.Sprintf("%s/needs/%d", d.appURL, needID)
}

func (d *Dispatcher) emailJob(template, to, subject string, data interface{}) *EmailMessage {
	html, err := renderTemplate(template, data)
	if err != nil {
		d.logger.WithError(err).WithField("template", template).Error("failed to render email")
		return nil
	}
	return &EmailMessage{To: to, Subject: subject, HTML: html}
}

// NeedCreated confirms a freshly published post to its owner.
func (d *Dispatcher) NeedCreated(need *models.TeamNeed) {
	d.Dispatch(Job{
		Email: d.emailJob("need_created", need.OwnerEmail, "Your team post is live", map[string]interface{}{
			"OwnerName": need.OwnerName,
			"Title":     need.Title,
			"ActionURL": d.needURL(need.ID),
		}),
		InApp: &models.Notification{
			UserID:      need.OwnerUserID,
			Type:        models.NotifySystem,
			Title:       "Your team post is live",
			Message:     fmt.Sprintf("\"%s\" is now visible to other participants.", need.Title),
			RelatedID:   need.ID,
			RelatedType: models.RelatedTeamNeed,
			ActionURL:   d.needURL(need.ID),
		},
	})
}

// ApplicationReceived tells the owner about a new application and confirms it
// to the applicant.
func (d *Dispatcher) ApplicationReceived(need *models.TeamNeed, app *models.TeamApplication) {
	d.Dispatch(Job{
		Email: d.emailJob("application_received", need.OwnerEmail,
			fmt.Sprintf("New application for \"%s\"", need.Title), map[string]interface{}{
				"OwnerName":     need.OwnerName,
				"Title":         need.Title,
				"ApplicantName": app.ApplicantName,
				"Message":       app.Message,
				"ActionURL":     d.needURL(need.ID),
			}),
		InApp: &models.Notification{
			UserID:      need.OwnerUserID,
			Type:        models.NotifyApplyReceived,
			Title:       "New application",
			Message:     fmt.Sprintf("%s applied to \"%s\".", app.ApplicantName, need.Title),
			RelatedID:   app.ID,
			RelatedType: models.RelatedTeamApplication,
			ActionURL:   d.needURL(need.ID),
		},
	})

	d.Dispatch(Job{
		Email: d.emailJob("application_confirmation", app.ApplicantEmail,
			fmt.Sprintf("Application sent for \"%s\"", need.Title), map[string]interface{}{
				"ApplicantName": app.ApplicantName,
				"Title":         need.Title,
			}),
	})
}

// ApplicationDecided tells the applicant the owner's decision. On acceptance
// the need's contact hint rides along; this is the one place it is pushed to
// an applicant.
func (d *Dispatcher) ApplicationDecided(need *models.TeamNeed, app *models.TeamApplication) {
	var tmpl, subject, title, notifyType string
	switch app.Status {
	case models.ApplicationAccepted:
		tmpl = "application_accepted"
		subject = fmt.Sprintf("Accepted: \"%s\"", need.Title)
		title = "Application accepted"
		notifyType = models.NotifyApplyAccepted
	case models.ApplicationRejected:
		tmpl = "application_rejected"
		subject = fmt.Sprintf("Update on \"%s\"", need.Title)
		title = "Application rejected"
		notifyType = models.NotifyApplyRejected
	default:
		return
	}

	message := fmt.Sprintf("Your application to \"%s\" was %s.", need.Title, app.Status)
	if app.Status == models.ApplicationAccepted && need.ContactHint != "" {
		message += " Contact: " + need.ContactHint
	}

	d.Dispatch(Job{
		Email: d.emailJob(tmpl, app.ApplicantEmail, subject, map[string]interface{}{
			"ApplicantName": app.ApplicantName,
			"Title":         need.Title,
			"ContactHint":   need.ContactHint,
		}),
		InApp: &models.Notification{
			UserID:      app.ApplicantUserID,
			Type:        notifyType,
			Title:       title,
			Message:     message,
			RelatedID:   need.ID,
			RelatedType: models.RelatedTeamNeed,
			ActionURL:   d.needURL(need.ID),
		},
	})
}

// NeedUpdated pushes an in-app note to applicants still involved with the need.
func (d *Dispatcher) NeedUpdated(need *models.TeamNeed, applicantUserIDs []string) {
	for _, userID := range applicantUserIDs {
		d.Dispatch(Job{
			InApp: &models.Notification{
				UserID:      userID,
				Type:        models.NotifyNeedUpdated,
				Title:       "Team post updated",
				Message:     fmt.Sprintf("\"%s\" was updated by its owner.", need.Title),
				RelatedID:   need.ID,
				RelatedType: models.RelatedTeamNeed,
				ActionURL:   d.needURL(need.ID),
			},
		})
	}
}
