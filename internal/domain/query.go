package domain

// Row mapeia o nome da coluna para o valor da célula
type Row map[string]Value

// QueryResult é o resultado de uma consulta já convertido
type QueryResult struct {
	Rows    []Row
	Columns []string
}

type QueryRequest struct {
	Query *string `json:"query"`
}

// QueryResponse é o envelope devolvido por /execute. Exatamente um entre Data e
// Error é preenchido.
type QueryResponse struct {
	Success  bool          `json:"success"`
	Data     []Row         `json:"data"`
	Error    *string       `json:"error"`
	Metadata QueryMetadata `json:"metadata"`
}

type QueryMetadata struct {
	RowCount        int      `json:"row_count"`
	Columns         []string `json:"columns"`
	ExecutionTimeMs int64    `json:"execution_time_ms"`
}

func NewSuccessResponse(result *QueryResult, executionTimeMs int64) QueryResponse {
	rows := result.Rows
	if rows == nil {
		rows = []Row{}
	}

	columns := result.Columns
	if columns == nil {
		columns = []string{}
	}

	return QueryResponse{
		Success: true,
		Data:    rows,
		Metadata: QueryMetadata{
			RowCount:        len(rows),
			Columns:         columns,
			ExecutionTimeMs: executionTimeMs,
		},
	}
}

// NewErrorResponse não reporta o tempo de execução nem colunas
func NewErrorResponse(message string) QueryResponse {
	return QueryResponse{
		Success: false,
		Error:   &message,
		Metadata: QueryMetadata{
			RowCount: 0,
			Columns:  []string{},
		},
	}
}
