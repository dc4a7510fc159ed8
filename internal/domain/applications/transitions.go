package applications

// Tabla de transiciones permitidas. WITHDRAWN y ADOPTED son terminales.
var transitions = map[Status][]Status{
	StatusPending:   {StatusReviewing, StatusApproved, StatusRejected, StatusWithdrawn, StatusAdopted},
	StatusReviewing: {StatusPending, StatusApproved, StatusRejected, StatusWithdrawn, StatusAdopted},
	StatusApproved:  {StatusReviewing, StatusRejected, StatusWithdrawn, StatusAdopted},
	StatusRejected:  {StatusReviewing},
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ReasonRequired: todo cambio de estado exige motivo salvo PENDING -> REVIEWING.
func ReasonRequired(from, to Status) bool {
	if from == to {
		return false
	}
	return !(from == StatusPending && to == StatusReviewing)
}
