// Package sql предоставляет реализацию репозиториев ссылок и переходов поверх gorm
// (sqlite или PostgreSQL).
//
// Все методы репозитория преобразуют ошибки драйвера в общие ошибки уровня репозитория
// с помощью ConvertErrorType:
//   - gorm.ErrDuplicatedKey, pg 23505, sqlite UNIQUE constraint -> repositories.ErrDuplicateKey
//   - gorm.ErrRecordNotFound -> repositories.ErrNotFound
//   - другие ошибки -> repositories.ErrUnknown
package sql
