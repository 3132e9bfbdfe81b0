package client

import "encoding/json"

// Nama method remote di server POS. Semua operasi client lewat daftar ini.
const (
	MethodGetMenu         = "restaurant_pos.api.menu.get_menu"
	MethodPlaceOrder      = "restaurant_pos.api.order.place_order"
	MethodAddItemsToOrder = "restaurant_pos.api.order.add_items_to_order"
	MethodGetOrderStatus  = "restaurant_pos.api.order.get_order_status"

	MethodGetKitchenOrders  = "restaurant_pos.api.kitchen.get_kitchen_orders"
	MethodUpdateOrderStatus = "restaurant_pos.api.kitchen.update_order_status"
	MethodBumpOrder         = "restaurant_pos.api.kitchen.bump_order"
	MethodRecallOrder       = "restaurant_pos.api.kitchen.recall_order"
	MethodSetPriority       = "restaurant_pos.api.kitchen.set_priority"
	MethodGetKitchenStats   = "restaurant_pos.api.kitchen.get_kitchen_stats"

	MethodCallWaiter   = "restaurant_pos.api.waiter.call_waiter"
	MethodGetAllTables = "restaurant_pos.api.waiter.get_all_tables"
)

// Result adalah amplop respons standar server: flag sukses, pesan untuk
// user, dan payload data mentah.
type Result struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// DecodeData meng-unmarshal payload data ke struct tujuan.
func (r *Result) DecodeData(v interface{}) error {
	if len(r.Data) == 0 {
		return nil
	}
	return json.Unmarshal(r.Data, v)
}

// Caller adalah antarmuka request/response ke server. Error yang dikembalikan
// hanya untuk kegagalan transport; penolakan server dikembalikan sebagai
// Result dengan Success=false.
type Caller interface {
	Call(method string, args map[string]interface{}) (*Result, error)
}
