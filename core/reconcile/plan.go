package reconcile

import "database/sql"

// Plan is the validated, typed form of a batch. Building it executes nothing.
type Plan struct {
	// Actions are the statements to run, in batch order.
	Actions []Action `json:"actions"`
	// Failures are rejected or invalid items, in batch order.
	Failures []Failure `json:"failures"`
	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	Total    int `json:"total"`
	Inserts  int `json:"inserts"`
	Updates  int `json:"updates"`
	Deletes  int `json:"deletes"`
	Rejected int `json:"rejected"`
}

// Valid reports whether every item produced an action.
func (p *Plan) Valid() bool {
	return len(p.Failures) == 0
}

// BuildPlan classifies and validates every request.
// Items that are rejected or fail validation are listed in Failures; the rest become typed commands.
func BuildPlan(reqs []ChangeRequest) (*Plan, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyBatch
	}

	plan := &Plan{
		Actions:  make([]Action, 0, len(reqs)),
		Failures: []Failure{},
	}
	plan.Summary.Total = len(reqs)

	for i, req := range reqs {
		kind := Classify(req)
		action := Action{Index: i, Kind: kind, Key: req.Key()}

		var err error
		switch kind {
		case KindDelete:
			action.Delete, err = buildDelete(req)
		case KindInsert:
			action.Insert, err = buildInsert(req)
		case KindUpdate:
			action.Update, err = buildUpdate(req)
		default:
			err = ErrUnclassifiable
		}

		if err != nil {
			plan.Failures = append(plan.Failures, Failure{
				Index:  i,
				Kind:   kind,
				Key:    action.Key,
				Reason: err.Error(),
			})
			plan.Summary.Rejected++
			continue
		}

		plan.Actions = append(plan.Actions, action)
		switch kind {
		case KindDelete:
			plan.Summary.Deletes++
		case KindInsert:
			plan.Summary.Inserts++
		case KindUpdate:
			plan.Summary.Updates++
		}
	}

	return plan, nil
}

func buildInsert(req ChangeRequest) (*InsertCommand, error) {
	orderRef, err := requiredInt("orderRef", req.OrderRef)
	if err != nil {
		return nil, err
	}
	orderID, err := requiredInt("orderId", req.OrderID)
	if err != nil {
		return nil, err
	}
	if !req.ReferenceCode.Present() {
		return nil, &ValidationError{Field: "referenceCode", Reason: "is required"}
	}
	if !req.UnitValue.Present() {
		return nil, &ValidationError{Field: "unitValue", Reason: "is required"}
	}
	unitValue, err := req.UnitValue.Decimal()
	if err != nil {
		return nil, &ValidationError{Field: "unitValue", Reason: "must be a decimal number"}
	}
	status, err := requiredInt("status", req.Status)
	if err != nil {
		return nil, err
	}
	returnedAt, err := optionalTime("returnedAt", req.ReturnedAt)
	if err != nil {
		return nil, err
	}

	return &InsertCommand{
		OrderRef:      orderRef,
		OrderID:       orderID,
		ReferenceCode: req.ReferenceCode.String(),
		Description:   optionalString(req.Description),
		UnitValue:     unitValue.Round(2),
		Status:        int(status),
		OutOfOrder:    req.OutOfOrder.Bool(),
		UnitCode:      optionalString(req.UnitCode),
		ProductCode:   optionalString(req.ProductCode),
		ReturnUser:    optionalString(req.ReturnUser),
		ReturnedAt:    returnedAt,
		Rescheduled:   req.Rescheduled.Bool(),
	}, nil
}

func buildUpdate(req ChangeRequest) (*UpdateCommand, error) {
	itemID, err := requiredInt("itemId", req.ItemID)
	if err != nil {
		return nil, err
	}
	status, err := requiredInt("status", req.Status)
	if err != nil {
		return nil, err
	}
	returnedAt, err := optionalTime("returnedAt", req.ReturnedAt)
	if err != nil {
		return nil, err
	}

	return &UpdateCommand{
		ItemID:      itemID,
		Status:      int(status),
		Rescheduled: req.Rescheduled.Bool(),
		OutOfOrder:  req.OutOfOrder.Bool(),
		ReturnedAt:  returnedAt,
		ReturnUser:  optionalString(req.ReturnUser),
	}, nil
}

func buildDelete(req ChangeRequest) (*DeleteCommand, error) {
	if req.HasItemID() {
		itemID, err := requiredInt("itemId", req.ItemID)
		if err != nil {
			return nil, err
		}
		return &DeleteCommand{ItemID: itemID}, nil
	}

	// Without an itemId the composite key must be complete.
	if !req.OrderRef.Present() || !req.OrderID.Present() || !req.ReferenceCode.Present() {
		return nil, &ValidationError{
			Field:  "itemId",
			Reason: "is required unless orderRef, orderId and referenceCode are all set",
		}
	}
	orderRef, err := requiredInt("orderRef", req.OrderRef)
	if err != nil {
		return nil, err
	}
	orderID, err := requiredInt("orderId", req.OrderID)
	if err != nil {
		return nil, err
	}

	return &DeleteCommand{
		OrderRef:      orderRef,
		OrderID:       orderID,
		ReferenceCode: req.ReferenceCode.String(),
	}, nil
}

func requiredInt(field string, v Value) (int64, error) {
	if !v.Present() {
		return 0, &ValidationError{Field: field, Reason: "is required"}
	}
	i, err := v.Int()
	if err != nil {
		return 0, &ValidationError{Field: field, Reason: "must be an integer"}
	}
	return i, nil
}

func optionalString(v Value) sql.NullString {
	if !v.Present() {
		return sql.NullString{}
	}
	return sql.NullString{String: v.String(), Valid: true}
}

func optionalTime(field string, v Value) (sql.NullTime, error) {
	if !v.Present() {
		return sql.NullTime{}, nil
	}
	t, err := v.Time()
	if err != nil {
		return sql.NullTime{}, &ValidationError{Field: field, Reason: "must be an ISO-8601 timestamp"}
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}
