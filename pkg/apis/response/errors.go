package response

var errors = map[ErrCode]string{
	ErrCodeMalformedJSON:                 "The JSON you provided was not well-formed or did not validate against our published format.",
	ErrCodeRequestBody:                   "Request body error",
	ErrCodeResourceExists:                "Resource %s already exists.",
	ErrCodeResourceNotFound:              "Resource %s not found.",
	ErrCodeLegalActionNotFound:           "Legal action not found.",
	ErrCodeInstrumentNotFound:            "Instrument %s not found.",
	ErrCodeInstrumentNotConnect:          "Instrument %s not connected.",
	ErrCodeInstrumentOperatorUnSupported: "Instrument operator %s not supported.",
	ErrCodeTooManyJsonPatchOperations:    "The allowed maximum operations in a JSON patch is %d.",
}

// !!! IMPORTANT PLEASE READ FIRST !!!
// You SHOULD add new code at the end of enum firstly.

var ErrMalformedJSON = &responseError{
	Code:    ErrCodeMalformedJSON,
	Message: errors[ErrCodeMalformedJSON],
}

var ErrRequestBody = &responseError{
	Code:    ErrCodeRequestBody,
	Message: errors[ErrCodeRequestBody],
}

var ErrLegalActionNotFound = &responseError{
	Code:    ErrCodeLegalActionNotFound,
	Message: errors[ErrCodeLegalActionNotFound],
}

func ErrInstrumentNotFound(id string) *responseError {
	return generateError(ErrCodeInstrumentNotFound, id)
}

func ErrInstrumentNotConnect(id string) *responseError {
	return generateError(ErrCodeInstrumentNotConnect, id)
}

func ErrInstrumentOperatorUnSupported(status string) *responseError {
	return generateError(ErrCodeInstrumentOperatorUnSupported, status)
}

func ErrTooManyJsonPatchOperations(max int) *responseError {
	return generateError(ErrCodeTooManyJsonPatchOperations, max)
}
