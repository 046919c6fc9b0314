package domain

// Item is a lendable commodity (komoditas). AvailableUnits only moves
// through loan approval (reserve) and validated returns (release);
// 0 <= AvailableUnits <= TotalUnits always holds.
type Item struct {
	ID             int32  `json:"id"`
	Name           string `json:"nama"`
	Description    string `json:"deskripsi"`
	TotalUnits     int32  `json:"jumlah_total"`
	AvailableUnits int32  `json:"jumlah_tersedia"`
	CategoryID     *int32 `json:"kategori_id"`
	CategoryName   string `json:"kategori_nama,omitempty"`
	CreatedOn      string `json:"created_at"`
}

// Category groups items (kategori).
type Category struct {
	ID          int32  `json:"id"`
	Name        string `json:"nama"`
	Description string `json:"deskripsi"`
	CreatedOn   string `json:"created_at"`
}

// Department is a school department (jurusan), plain administrative CRUD.
type Department struct {
	ID          int32   `json:"id"`
	Name        string  `json:"nama"`
	Description *string `json:"deskripsi"`
	CreatedOn   string  `json:"created_at"`
}
