package domain

import "time"

const SalesTable = "sales"

// Sale é um registro da tabela sales
type Sale struct {
	ID          int64     `db:"id" json:"id"`
	Region      string    `db:"region" json:"region"`
	Product     string    `db:"product" json:"product"`
	Month       string    `db:"month" json:"month"`
	SalesAmount float64   `db:"sales_amount" json:"sales_amount"`
	Quantity    int       `db:"quantity" json:"quantity"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// SampleSales são os registros carregados na primeira inicialização: quatro
// regiões, dois produtos e cinco meses, nesta ordem.
var SampleSales = []Sale{
	{Region: "North", Product: "Product A", Month: "January", SalesAmount: 15000.0, Quantity: 100},
	{Region: "North", Product: "Product B", Month: "January", SalesAmount: 12000.0, Quantity: 80},
	{Region: "South", Product: "Product A", Month: "January", SalesAmount: 18000.0, Quantity: 120},
	{Region: "South", Product: "Product B", Month: "January", SalesAmount: 14000.0, Quantity: 90},
	{Region: "East", Product: "Product A", Month: "January", SalesAmount: 16000.0, Quantity: 110},
	{Region: "East", Product: "Product B", Month: "January", SalesAmount: 13000.0, Quantity: 85},
	{Region: "West", Product: "Product A", Month: "January", SalesAmount: 17000.0, Quantity: 115},
	{Region: "West", Product: "Product B", Month: "January", SalesAmount: 11000.0, Quantity: 75},
	{Region: "North", Product: "Product A", Month: "February", SalesAmount: 16000.0, Quantity: 105},
	{Region: "North", Product: "Product B", Month: "February", SalesAmount: 13000.0, Quantity: 85},
	{Region: "South", Product: "Product A", Month: "February", SalesAmount: 19000.0, Quantity: 125},
	{Region: "South", Product: "Product B", Month: "February", SalesAmount: 15000.0, Quantity: 95},
	{Region: "East", Product: "Product A", Month: "February", SalesAmount: 17000.0, Quantity: 115},
	{Region: "East", Product: "Product B", Month: "February", SalesAmount: 14000.0, Quantity: 90},
	{Region: "West", Product: "Product A", Month: "February", SalesAmount: 18000.0, Quantity: 120},
	{Region: "West", Product: "Product B", Month: "February", SalesAmount: 12000.0, Quantity: 80},
	{Region: "North", Product: "Product A", Month: "March", SalesAmount: 17000.0, Quantity: 110},
	{Region: "North", Product: "Product B", Month: "March", SalesAmount: 14000.0, Quantity: 90},
	{Region: "South", Product: "Product A", Month: "March", SalesAmount: 20000.0, Quantity: 130},
	{Region: "South", Product: "Product B", Month: "March", SalesAmount: 16000.0, Quantity: 100},
	{Region: "East", Product: "Product A", Month: "March", SalesAmount: 18000.0, Quantity: 120},
	{Region: "East", Product: "Product B", Month: "March", SalesAmount: 15000.0, Quantity: 95},
	{Region: "West", Product: "Product A", Month: "March", SalesAmount: 19000.0, Quantity: 125},
	{Region: "West", Product: "Product B", Month: "March", SalesAmount: 13000.0, Quantity: 85},
	{Region: "North", Product: "Product A", Month: "April", SalesAmount: 18000.0, Quantity: 115},
	{Region: "North", Product: "Product B", Month: "April", SalesAmount: 15000.0, Quantity: 95},
	{Region: "South", Product: "Product A", Month: "April", SalesAmount: 21000.0, Quantity: 135},
	{Region: "South", Product: "Product B", Month: "April", SalesAmount: 17000.0, Quantity: 105},
	{Region: "East", Product: "Product A", Month: "April", SalesAmount: 19000.0, Quantity: 125},
	{Region: "East", Product: "Product B", Month: "April", SalesAmount: 16000.0, Quantity: 100},
	{Region: "West", Product: "Product A", Month: "April", SalesAmount: 20000.0, Quantity: 130},
	{Region: "West", Product: "Product B", Month: "April", SalesAmount: 14000.0, Quantity: 90},
	{Region: "North", Product: "Product A", Month: "May", SalesAmount: 19000.0, Quantity: 120},
	{Region: "North", Product: "Product B", Month: "May", SalesAmount: 16000.0, Quantity: 100},
	{Region: "South", Product: "Product A", Month: "May", SalesAmount: 22000.0, Quantity: 140},
	{Region: "South", Product: "Product B", Month: "May", SalesAmount: 18000.0, Quantity: 110},
	{Region: "East", Product: "Product A", Month: "May", SalesAmount: 20000.0, Quantity: 130},
	{Region: "East", Product: "Product B", Month: "May", SalesAmount: 17000.0, Quantity: 105},
	{Region: "West", Product: "Product A", Month: "May", SalesAmount: 21000.0, Quantity: 135},
	{Region: "West", Product: "Product B", Month: "May", SalesAmount: 15000.0, Quantity: 95},
}

// ColumnInfo descreve uma coluna de tabela conforme PRAGMA table_info
type ColumnInfo struct {
	CID          int     `db:"cid" json:"-"`
	Name         string  `db:"name" json:"name"`
	Type         string  `db:"type" json:"type"`
	NotNull      bool    `db:"notnull" json:"not_null"`
	DefaultValue *string `db:"dflt_value" json:"default_value"`
	PrimaryKey   int     `db:"pk" json:"primary_key"` // posição na chave primária, 0 quando não faz parte
}

type TableSchema struct {
	Table   string       `json:"table"`
	Columns []ColumnInfo `json:"columns"`
}
