package service

import "errors"

// ErrEmptyBatch возвращается, когда после удаления пустых строк не осталось URL
var ErrEmptyBatch = errors.New("empty batch")

// ErrBatchTooLarge возвращается, когда число URL превышает лимит
var ErrBatchTooLarge = errors.New("batch too large")

// ErrUnsupportedFormat возвращается для неизвестного формата вывода
var ErrUnsupportedFormat = errors.New("unsupported format")
