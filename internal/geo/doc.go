// Package geo определяет примерное местоположение клиента по IP адресу.
//
// Locate никогда не возвращает ошибку: адреса локальных сетей дают models.LocationLocal,
// пустой адрес и любые сбои внешнего сервиса дают models.LocationUnknown.
package geo
