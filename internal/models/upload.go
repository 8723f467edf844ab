package models

import "io"

// Capacity — общий лимит хранилища, 25 GiB.
const Capacity int64 = 25 * 1024 * 1024 * 1024

// Download возвращается сервисом при скачивании; Body закрывает вызывающий.
type Download struct {
	Record FileRecord
	Size   int64
	Body   io.ReadCloser
}

// Usage описывает текущее заполнение квоты.
type Usage struct {
	CapacityBytes  int64  `json:"capacity_bytes"`
	UsedBytes      int64  `json:"used_bytes"`
	AvailableBytes int64  `json:"available_bytes"`
	Files          int    `json:"files"`
	Capacity       string `json:"capacity"`
	Used           string `json:"used"`
}

// SweepResult описывает итог прохода сборщика осиротевших блобов.
type SweepResult struct {
	Scanned int   `json:"scanned"`
	Removed int   `json:"removed"`
	Freed   int64 `json:"freed_bytes"`
}
