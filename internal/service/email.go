package service

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host, port, username, password, from string) EmailService {
	p, _ := strconv.Atoi(port)
	return &emailService{
		host:     host,
		port:     p,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, name, itemName, deadline string, daysLate int32, estimatedFine int64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Pengingat: peminjaman %s sudah lewat tenggat", itemName))

	body := fmt.Sprintf(
		"Halo %s,\n\nPeminjaman barang %s sudah melewati tenggat (%s) selama %d hari.\nPerkiraan denda keterlambatan saat ini: Rp %d.\n\nMohon segera kembalikan barang ke petugas.\n\nTerima kasih.",
		name, itemName, deadline, daysLate, estimatedFine)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send overdue reminder: %w", err)
	}

	return nil
}
