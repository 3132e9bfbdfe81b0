package desk

import (
	"github.com/yeremiapane/restaurant-client/client"
	"github.com/yeremiapane/restaurant-client/utils"
)

// CallWaiter mengirim permintaan panggil pelayan dari sisi customer.
func CallWaiter(caller client.Caller, tableCode, reason string) error {
	args := map[string]interface{}{
		"table_code": tableCode,
	}
	if reason != "" {
		args["reason"] = reason
	}

	result, err := caller.Call(client.MethodCallWaiter, args)
	if err != nil {
		return &utils.ActionError{Action: "call_waiter", Transport: true}
	}
	if !result.Success {
		return &utils.ActionError{Action: "call_waiter", Reason: result.Message}
	}

	utils.InfoLogger.Infof("waiter called for table %s", tableCode)
	return nil
}
