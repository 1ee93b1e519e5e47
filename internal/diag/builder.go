package diag

func New(sev Severity, code Code, op, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Op:       op,
		Message:  msg,
		Notes:    nil,
	}
}

func NewError(code Code, op, msg string) Diagnostic {
	return New(SevError, code, op, msg)
}

func NewWarning(code Code, op, msg string) Diagnostic {
	return New(SevWarning, code, op, msg)
}

func (d Diagnostic) WithNote(msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Msg: msg})
	return d
}

func (d Diagnostic) At(p Pos) Diagnostic {
	d.Primary = p
	return d
}
