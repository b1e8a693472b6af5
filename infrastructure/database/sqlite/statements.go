package sqlite

import (
	"errors"
	"strings"
)

// ErrMultipleStatements indica um texto com mais de um statement
var ErrMultipleStatements = errors.New("Multiple statements provided")

type tokenKind int

const (
	tokenSemi tokenKind = iota
	tokenSpace
	tokenOther
	tokenExplain
	tokenCreate
	tokenTemp
	tokenTrigger
	tokenEnd
)

// estados da máquina do sqlite3_complete
const (
	stateStart   = 1
	stateNormal  = 2
	stateExplain = 3
	stateCreate  = 4
	stateTrigger = 5
	stateSemi    = 6
	stateEnd     = 7
)

// transitions[estado][token], mesma tabela usada pelo SQLite para decidir se
// um ponto e vírgula encerra o statement (dentro de um trigger não encerra)
var transitions = [8][8]int{
	/* invalid */ {stateStart, 0, stateNormal, stateExplain, stateCreate, stateNormal, stateNormal, stateNormal},
	/* start   */ {stateStart, stateStart, stateNormal, stateExplain, stateCreate, stateNormal, stateNormal, stateNormal},
	/* normal  */ {stateStart, stateNormal, stateNormal, stateNormal, stateNormal, stateNormal, stateNormal, stateNormal},
	/* explain */ {stateStart, stateExplain, stateExplain, stateNormal, stateCreate, stateNormal, stateNormal, stateNormal},
	/* create  */ {stateStart, stateCreate, stateNormal, stateNormal, stateNormal, stateCreate, stateTrigger, stateNormal},
	/* trigger */ {stateSemi, stateTrigger, stateTrigger, stateTrigger, stateTrigger, stateTrigger, stateTrigger, stateTrigger},
	/* semi    */ {stateSemi, stateSemi, stateTrigger, stateTrigger, stateTrigger, stateTrigger, stateTrigger, stateEnd},
	/* end     */ {stateStart, stateEnd, stateTrigger, stateTrigger, stateTrigger, stateTrigger, stateTrigger, stateTrigger},
}

// SplitStatements separa o texto em statements, sem o ponto e vírgula final e
// sem espaços ou comentários nas pontas. Statements vazios (";", só
// comentários) são descartados. Strings e comentários não terminados seguem
// como parte do statement para o SQLite reportar o erro.
func SplitStatements(sql string) []string {
	var statements []string

	state := 0
	start, end := -1, -1

	flush := func() {
		if start >= 0 {
			statements = append(statements, sql[start:end])
		}
		start, end = -1, -1
	}

	for pos := 0; pos < len(sql); {
		kind, next := scanToken(sql, pos)

		state = transitions[state][kind]

		switch {
		case kind == tokenSpace:
		case kind == tokenSemi && state == stateStart:
			flush()
		default:
			if start < 0 {
				start = pos
			}
			end = next
		}

		pos = next
	}

	flush()

	return statements
}

// scanToken lê um token a partir de pos e devolve o tipo e a posição seguinte
func scanToken(sql string, pos int) (tokenKind, int) {
	c := sql[pos]

	switch {
	case c == ';':
		return tokenSemi, pos + 1
	case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
		return tokenSpace, pos + 1
	case c == '-' && pos+1 < len(sql) && sql[pos+1] == '-':
		if i := strings.IndexByte(sql[pos:], '\n'); i >= 0 {
			return tokenSpace, pos + i + 1
		}
		return tokenSpace, len(sql)
	case c == '/' && pos+1 < len(sql) && sql[pos+1] == '*':
		if i := strings.Index(sql[pos+2:], "*/"); i >= 0 {
			return tokenSpace, pos + 2 + i + 2
		}
		return tokenOther, len(sql)
	case c == '\'' || c == '"' || c == '`':
		return tokenOther, closing(sql, pos, c)
	case c == '[':
		return tokenOther, closing(sql, pos, ']')
	case isIdentChar(c):
		next := pos + 1
		for next < len(sql) && isIdentChar(sql[next]) {
			next++
		}
		return keyword(sql[pos:next]), next
	default:
		return tokenOther, pos + 1
	}
}

// closing devolve a posição após o delimitador que fecha o token iniciado em pos.
// Aspas duplicadas ('it''s') viram dois tokens seguidos, o que não muda o estado.
func closing(sql string, pos int, delim byte) int {
	if i := strings.IndexByte(sql[pos+1:], delim); i >= 0 {
		return pos + 1 + i + 1
	}
	return len(sql)
}

func isIdentChar(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func keyword(word string) tokenKind {
	switch strings.ToLower(word) {
	case "explain":
		return tokenExplain
	case "create":
		return tokenCreate
	case "temp", "temporary":
		return tokenTemp
	case "trigger":
		return tokenTrigger
	case "end":
		return tokenEnd
	default:
		return tokenOther
	}
}
