package models

// FileRecord описывает один файл в хранилище метаданных.
type FileRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size string `json:"size"`
	Date string `json:"date"`
	Path string `json:"path"`
}

// Snapshot — полный набор записей; сохраняется и читается целиком.
type Snapshot struct {
	Files []FileRecord `json:"files"`
}

// Clone возвращает копию снапшота, чтобы не делиться внутренним срезом.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Files: make([]FileRecord, len(s.Files))}
	copy(out.Files, s.Files)
	return out
}

// Find возвращает индекс записи с указанным id либо -1.
func (s Snapshot) Find(id int64) int {
	for i, f := range s.Files {
		if f.ID == id {
			return i
		}
	}
	return -1
}
