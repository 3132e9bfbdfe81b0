package menu

import (
	"errors"
	"sync"

	"github.com/yeremiapane/restaurant-client/client"
	"github.com/yeremiapane/restaurant-client/models"
	"github.com/yeremiapane/restaurant-client/utils"
)

// Catalog memuat menu dari server dan menyediakan lookup item beserta
// aturan modifier-nya untuk validasi keranjang.
type Catalog struct {
	caller client.Caller

	mutex     sync.RWMutex
	menu      *models.Menu
	itemsByID map[string]*models.MenuItem
}

func NewCatalog(caller client.Caller) *Catalog {
	return &Catalog{
		caller:    caller,
		itemsByID: make(map[string]*models.MenuItem),
	}
}

// Load mengambil menu untuk satu meja/branch dan mengganti isi katalog.
func (c *Catalog) Load(tableCode, branch, language string) (*models.Menu, error) {
	args := map[string]interface{}{
		"language": language,
	}
	if tableCode != "" {
		args["table_code"] = tableCode
	}
	if branch != "" {
		args["branch"] = branch
	}

	result, err := c.caller.Call(client.MethodGetMenu, args)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		message := result.Message
		if message == "" {
			message = "error loading menu"
		}
		return nil, errors.New(message)
	}

	var loaded models.Menu
	if err := result.DecodeData(&loaded); err != nil {
		return nil, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.menu = &loaded
	c.itemsByID = make(map[string]*models.MenuItem)
	for ci := range loaded.Categories {
		category := &loaded.Categories[ci]
		for ii := range category.Items {
			item := &category.Items[ii]
			c.itemsByID[item.ID] = item
		}
	}

	utils.InfoLogger.Infof("menu loaded: %d categories, %d items",
		len(loaded.Categories), len(c.itemsByID))

	return &loaded, nil
}

// Item mengembalikan satu menu item berdasarkan ID.
func (c *Catalog) Item(menuItemID string) (*models.MenuItem, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	item, found := c.itemsByID[menuItemID]
	return item, found
}

// ModifierGroups mengembalikan aturan modifier untuk satu item. Item yang
// tidak dikenal dianggap tanpa modifier.
func (c *Catalog) ModifierGroups(menuItemID string) []models.ModifierGroup {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if item, found := c.itemsByID[menuItemID]; found {
		return item.ModifierGroups
	}
	return nil
}

// Settings mengembalikan blok pengaturan dari menu terakhir yang dimuat.
func (c *Catalog) Settings() models.MenuSettings {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if c.menu == nil {
		return models.MenuSettings{VATPercent: 15}
	}
	return c.menu.Settings
}
