package desk

import (
	"sync"

	"github.com/yeremiapane/restaurant-client/client"
	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/utils"
)

// FloorView memegang denah meja untuk admin desk. Seperti board dapur, isinya
// selalu listing server terbaru (full replace) dan respons refresh yang basi
// dibuang.
type FloorView struct {
	mutex sync.Mutex

	caller client.Caller
	branch string

	tables     []models.Table
	refreshSeq uint64
}

func NewFloorView(caller client.Caller, branch string) *FloorView {
	return &FloorView{
		caller: caller,
		branch: branch,
	}
}

// Refresh mengganti seluruh daftar meja dengan listing server.
func (f *FloorView) Refresh() error {
	f.mutex.Lock()
	f.refreshSeq++
	seq := f.refreshSeq
	f.mutex.Unlock()

	args := map[string]interface{}{}
	if f.branch != "" {
		args["branch"] = f.branch
	}

	result, err := f.caller.Call(client.MethodGetAllTables, args)
	if err != nil {
		return err
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	if seq != f.refreshSeq {
		utils.InfoLogger.Debugf("discarding stale floor refresh (seq %d)", seq)
		return nil
	}

	if !result.Success {
		utils.ErrorLogger.Errorf("floor refresh rejected: %s", result.Message)
		return &utils.ActionError{Action: "floor_refresh", Reason: result.Message}
	}

	var tables []models.Table
	if err := result.DecodeData(&tables); err != nil {
		return &utils.ActionError{Action: "floor_refresh", Reason: "invalid tables payload"}
	}

	f.tables = tables
	return nil
}

// Tables mengembalikan salinan daftar meja.
func (f *FloorView) Tables() []models.Table {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]models.Table(nil), f.tables...)
}
