package email

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/gen2brain/beeep"
)

func SendPasswordResetEmail(email string, pin string) error {
	if os.Getenv("GOENV") == "production" {
		// Production environment - send email using AWS SES
		subject := "Redefinição de senha"
		htmlBody := fmt.Sprintf("<h1>Redefinição de senha</h1><p>Seu código de redefinição é: <strong>%s</strong></p>", pin)
		textBody := fmt.Sprintf("Seu código de redefinição é: %s", pin)
		return sendEmailViaSES(email, subject, htmlBody, textBody)
	}

	if os.Getenv("GOENV") == "development" {
		// Development environment
		// Copy pin to clipboard
		if err := clipboard.WriteAll(pin); err != nil {
			return fmt.Errorf("error copying pin to clipboard in dev: %v", err)
		}

		// Send notification
		err := beeep.Notify("Redefinição de senha", fmt.Sprintf("Reset pin %s copied to clipboard %s", pin, email), "")
		if err != nil {
			return fmt.Errorf("error sending notification in dev: %v", err)
		}
	}

	return nil
}

// sendEmailViaSES sends an email using AWS SES
func sendEmailViaSES(recipient, subject, htmlBody, textBody string) error {
	sess, err := session.NewSession()
	if err != nil {
		return fmt.Errorf("error creating AWS session: %v", err)
	}

	svc := ses.New(sess)

	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: []*string{
				aws.String(recipient),
			},
		},
		Message: &ses.Message{
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(htmlBody),
				},
				Text: &ses.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(textBody),
				},
			},
			Subject: &ses.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
		},
		Source: aws.String(fromAddress()),
	}

	_, err = svc.SendEmail(input)

	return err
}

func fromAddress() string {
	if addr := os.Getenv("EMAIL_FROM"); addr != "" {
		return addr
	}
	return "no-reply@gastos.app"
}
