package users

import "errors"

var (
	// ErrMissingFields не заполнены обязательные поля регистрации
	ErrMissingFields = errors.New("users.service: required fields are missing")

	// ErrPasswordTooShort пароль короче минимальной длины
	ErrPasswordTooShort = errors.New("users.service: password too short")

	// ErrUsernameTooLong имя пользователя длиннее допустимого
	ErrUsernameTooLong = errors.New("users.service: username too long")

	// ErrUsernameReserved имя зарезервировано за администратором
	ErrUsernameReserved = errors.New("users.service: username reserved")

	// ErrUsernameTaken имя уже занято
	ErrUsernameTaken = errors.New("users.service: username already taken")

	// ErrInvalidCredentials неверный логин или пароль
	ErrInvalidCredentials = errors.New("users.service: invalid credentials")

	// ErrUserNotFound пользователь не найден
	ErrUserNotFound = errors.New("users.service: user not found")

	ErrDisplayNameRequired = errors.New("users.service: display name required")
	ErrPhoneRequired       = errors.New("users.service: phone required")
	ErrPhoneTooLong        = errors.New("users.service: phone too long")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("users.service: internal error")
)
