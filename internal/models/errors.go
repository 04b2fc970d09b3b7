package models

import "errors"

// Ошибки доменного уровня. Хендлеры сопоставляют их с HTTP-статусами
// через errors.Is, не раскрывая внутренних деталей.
var (
	// ErrNotFound — сущность отсутствует или не принадлежит вызывающему.
	ErrNotFound = errors.New("not found")
	// ErrValidation — некорректные входные данные.
	ErrValidation = errors.New("validation failed")
	// ErrAlreadyPremium — повторная попытка покупки премиума.
	ErrAlreadyPremium = errors.New("user is already premium")
	// ErrProvider — внешний вызов (платёжный провайдер, хранилище файлов) не удался.
	ErrProvider = errors.New("provider call failed")
	// ErrEmailTaken — пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials — неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotPremium — операция доступна только премиум-пользователям.
	ErrNotPremium = errors.New("premium required")
)
