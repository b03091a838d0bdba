package mailer

import (
	"bytes"
	"text/template"
)

const (
	registrationSubject = "[FORKEYS] Registration Success / 注册成功"
	recoverySubject     = "[FORKEYS] Security Recovery / 安全恢复"
	testSubject         = "[FORKEYS] Email Test / 邮件测试"

	// AnswerNotSet replaces an empty registered answer in recovery mails.
	AnswerNotSet = "(Not Set / 未设置)"
)

var (
	registrationTmpl = template.Must(template.New("registration").Parse(`=== ENGLISH ===

Hello,

You have successfully registered backup recovery for forkeys.

Your registered email: {{.Email}}
Your security question has been stored encrypted.

If you forget your master password, you can request recovery through this email.
If you did not register, please ignore this email.


=== 中文 ===

您好，

您已成功注册 forkeys 备份恢复功能。

您的注册邮箱: {{.Email}}
安全问题已加密存储。

如果您忘记主密码，可以通过此邮箱请求恢复。
如果这不是您本人的操作，请忽略此邮件。

-- forkeys
`))

	recoveryTmpl = template.Must(template.New("recovery").Parse(`=== ENGLISH ===

Hello,

You requested to recover your vault access.

Security Question:
{{.Question}}

Security Answer:
{{.Answer}}

Use this answer to recover your password in the app.
If you did not request this, please ignore this email.


=== 中文 ===

您好，

您请求恢复金库访问权限。

安全问题:
{{.Question}}

安全答案:
{{.Answer}}

请使用此答案在应用中恢复您的密码。
如果这不是您本人的操作，请忽略此邮件。

-- forkeys
`))
)

// RegistrationMessage is sent after a successful registration.
func RegistrationMessage(email string) (Message, error) {
	body, err := render(registrationTmpl, struct{ Email string }{email})
	if err != nil {
		return Message{}, err
	}
	return Message{To: email, Subject: registrationSubject, Body: body}, nil
}

// RecoveryMessage carries the registered question and answer back to email.
func RecoveryMessage(email, question, answer string) (Message, error) {
	if answer == "" {
		answer = AnswerNotSet
	}
	body, err := render(recoveryTmpl, struct{ Question, Answer string }{question, answer})
	if err != nil {
		return Message{}, err
	}
	return Message{To: email, Subject: recoverySubject, Body: body}, nil
}

// TestMessage checks the relay configuration.
func TestMessage(email string) Message {
	return Message{
		To:      email,
		Subject: testSubject,
		Body:    "This is a test email.\n这是一封测试邮件。\n\n-- forkeys",
	}
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
