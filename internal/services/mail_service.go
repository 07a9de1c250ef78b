package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
	"sync"

	"forskull/internal/config"

	"github.com/sirupsen/logrus"
)

type MailService struct {
	Host    string
	Port    string
	User    string
	Pass    string
	From    string
	SiteURL string
	Enabled bool
}

var (
	mailService *MailService
	mailOnce    sync.Once
)

// InitMailService wires the service from config; must run before
// GetMailService is first used.
func InitMailService(cfg *config.Config) {
	mailOnce.Do(func() {
		enabled := cfg.SMTPHost != "" && cfg.SMTPPort != "" && cfg.SMTPUser != "" && cfg.SMTPPass != "" && cfg.SMTPFrom != ""
		if !enabled {
			logrus.Warn("MailService disabled: missing SMTP environment variables")
		}
		mailService = &MailService{
			Host:    cfg.SMTPHost,
			Port:    cfg.SMTPPort,
			User:    cfg.SMTPUser,
			Pass:    cfg.SMTPPass,
			From:    cfg.SMTPFrom,
			SiteURL: cfg.SiteURL,
			Enabled: enabled,
		}
	})
}

func GetMailService() *MailService {
	if mailService == nil {
		mailService = &MailService{}
	}
	return mailService
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: ForSkull <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
			logrus.Errorf("failed to send email to %v: %v", to, err)
		} else {
			logrus.Infof("email sent to %v: %s", to, subject)
		}
	}()
}

// Email bodies are inline templates; the wording mirrors the production
// Russian copy.
var (
	welcomeTmpl = template.Must(template.New("welcome").Parse(`
<h2>Добро пожаловать в Учебный Центр ForSkull!</h2>
<p>Спасибо за регистрацию. Для завершения регистрации введите код активации:</p>
<p style="font-size:24px;font-weight:bold">{{.Code}}</p>
<p>Что вас ждёт: задавайте вопросы, зарабатывайте баллы за полезные ответы,
повышайте свой рейтинг и помогайте другим студентам.</p>`))

	resetTmpl = template.Must(template.New("reset").Parse(`
<h2>Восстановление пароля</h2>
<p>Вы запросили сброс пароля. Код подтверждения:</p>
<p style="font-size:24px;font-weight:bold">{{.Code}}</p>
<p>Если вы не запрашивали сброс, просто проигнорируйте это письмо.</p>`))

	answerTmpl = template.Must(template.New("answer").Parse(`
<h2>Новый ответ на ваш вопрос</h2>
<p><b>{{.Author}}</b> ответил(а) на ваш вопрос «{{.Title}}».</p>
<p><a href="{{.Link}}">Посмотреть ответ</a></p>`))
)

func render(t *template.Template, data interface{}) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		logrus.Errorf("error rendering email template %s: %v", t.Name(), err)
		return ""
	}
	return buf.String()
}

func (s *MailService) SendWelcomeEmail(email, code string) {
	body := render(welcomeTmpl, map[string]string{"Code": code})
	if body == "" {
		return
	}
	s.sendAsync([]string{email}, "Добро пожаловать в ForSkull! Подтвердите ваш email", body)
}

func (s *MailService) SendPasswordResetEmail(email, code string) {
	body := render(resetTmpl, map[string]string{"Code": code})
	if body == "" {
		return
	}
	s.sendAsync([]string{email}, "[ForSkull] Восстановление пароля", body)
}

func (s *MailService) SendAnswerNotification(email, author, questionTitle, qid string) {
	body := render(answerTmpl, map[string]string{
		"Author": author,
		"Title":  questionTitle,
		"Link":   fmt.Sprintf("%s/q/%s", s.SiteURL, qid),
	})
	if body == "" {
		return
	}
	s.sendAsync([]string{email}, "💬 Новый ответ на ваш вопрос «"+questionTitle+"»", body)
}
