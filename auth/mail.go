package auth

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"gopkg.in/gomail.v2"
)

type SmtpConfig struct {
	Host       string
	Port       int
	SenderName string
	AuthEmail  string
	AuthPass   string
}

var smtpConfig = SmtpConfig{
	Host:       "smtp.gmail.com",
	Port:       587,
	SenderName: "MUTUALS <no-reply@localhost>",
}

// SetSmtpConfig installs the configured mail account, called once from
// main.
func SetSmtpConfig(cfg SmtpConfig) {
	smtpConfig = cfg
}

func SendHtmlMail(to string, subject string, data any, template_thtml string) error {
	// Read the HTML template file into a variable
	var body bytes.Buffer
	templateData, err := template.ParseFiles(fmt.Sprintf("../template/%s", template_thtml))
	if err != nil {
		// Get the current working directory
		wd, err := os.Getwd()
		if err != nil {
			return err
		}

		absPath, err := filepath.Abs(wd)
		if err != nil {
			return err
		}

		templateData, err = template.ParseFiles(fmt.Sprintf("%s/template/%s", absPath, template_thtml))
		if err != nil {
			return err
		}
	}

	err = templateData.Execute(&body, data)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", smtpConfig.SenderName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	m := gomail.NewDialer(smtpConfig.Host, smtpConfig.Port, smtpConfig.AuthEmail, smtpConfig.AuthPass)
	if err := m.DialAndSend(msg); err != nil {
		return err
	}

	return nil
}

func SendLoginCodeMail(to string, data any) error {
	return SendHtmlMail(to, "Your Sign-in Code", data, "mailcode_t.html")
}
