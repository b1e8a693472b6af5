package querying

// QueryError envolve a falha do banco. A mensagem é a do driver, sem prefixo,
// porque é ela que vai para o campo error do envelope.
type QueryError struct {
	Err      error
	QueryID  string
	TimedOut bool // a consulta foi interrompida pelo QUERY_TIMEOUT
}

func (e *QueryError) Error() string {
	return e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
