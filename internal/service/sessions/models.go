package sessions

import "time"

// Session авторизованная сессия пользователя
type Session struct {
	Token      string    `json:"token"`
	UserID     int64     `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
	UserAgent  string    `json:"userAgent"`
	RemoteAddr string    `json:"remoteAddr"`
}

// ClientMeta данные клиента, сохраняемые вместе с сессией
type ClientMeta struct {
	UserAgent  string
	RemoteAddr string
}

func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
