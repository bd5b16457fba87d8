package repository

import "errors"

// レコードが見つからない（GORM実装がgorm.ErrRecordNotFoundを変換する）
var ErrNotFound = errors.New("not found")
