package mail

import (
	"fmt"
	"io"

	qrcode "github.com/skip2/go-qrcode"
	gomail "gopkg.in/gomail.v2"

	"go-bookstore-api/internal/core/config"
)

// Mailer 发注册欢迎邮件，附带一张指向个人主页的二维码
type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string // 二维码里编码的站点地址
}

func New(cfg config.Mail, baseURL string) *Mailer {
	return &Mailer{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.From,
		baseURL: baseURL,
	}
}

func (m *Mailer) SendWelcome(name, email, userID string) error {
	png, err := qrcode.Encode(fmt.Sprintf("%s/users/%s", m.baseURL, userID), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Welcome to the bookstore")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Hi %s,</p><p>Your account is ready. Scan the attached QR code to open your profile.</p>", name))
	msg.Attach("profile-qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(png)
		return err
	}))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}
	return nil
}
