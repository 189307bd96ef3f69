package sat

func validateVariables(numVars int32) error {
	if numVars <= 0 {
		return invalidParameterf("numVars is <= 0: %d", numVars)
	}
	return nil
}

func validateParameters(numVars, numClauses int32) error {
	if err := validateVariables(numVars); err != nil {
		return err
	}
	if numClauses <= 0 {
		return invalidParameterf("numClauses is <= 0: %d", numClauses)
	}
	return nil
}

func validateLength(clause int32, length int32) error {
	if length < 0 {
		return invalidParameterf("clause %d declares a negative length: %d", clause, length)
	}
	return nil
}

// validateLiteral rejects 0 (variables are 1-indexed) and any variable above numVars.
func validateLiteral(literal, numVars int32) error {
	if literal == 0 {
		return invalidParameterf("literal 0 is not a valid variable reference")
	}
	// Widened so that -2^31 has a magnitude.
	magnitude := int64(literal)
	if magnitude < 0 {
		magnitude = -magnitude
	}
	if magnitude > int64(numVars) {
		return invalidParameterf("literal %d references a variable above numVars %d", literal, numVars)
	}
	return nil
}
