package schema

// CatalogComicTable represents the 'catalog.comic' table
type CatalogComicTable struct {
	Table             string
	ID                string
	BookName          string
	AuthorName        string
	YearOfPublication string
	Price             string
	Discount          string
	NumberOfPages     string
	Condition         string
	Description       string
	Genre             string
}

// CatalogComic is the schema definition for catalog.comic
var CatalogComic = CatalogComicTable{
	Table:             "catalog.comic",
	ID:                "id",
	BookName:          "bookname",
	AuthorName:        "authorname",
	YearOfPublication: "yearofpublication",
	Price:             "price",
	Discount:          "discount",
	NumberOfPages:     "numberofpages",
	Condition:         "condition",
	Description:       "description",
	Genre:             "genre",
}

func (t CatalogComicTable) Columns() []string {
	return []string{
		t.ID, t.BookName, t.AuthorName, t.YearOfPublication, t.Price,
		t.Discount, t.NumberOfPages, t.Condition, t.Description, t.Genre,
	}
}
