package config

import (
	"log"
	"sync"

	"sheetgrip/internal/eventbus"
)

// RememberFolder saves the folder of every started search as last_folder when
// the ui.remember_folder setting is on. The returned function unsubscribes and
// waits for pending saves.
func RememberFolder(bus eventbus.EventBus, svc ConfigService, cfg *Config) func() {
	var (
		mu      sync.Mutex
		pending sync.WaitGroup
	)
	unsubscribe := bus.Subscribe(eventbus.EventSearchStarted, func(e eventbus.DomainEvent) {
		folder := e.(eventbus.SearchStartedEvent).Request.Folder

		mu.Lock()
		if !cfg.UISettings.RememberFolder || cfg.LastFolder == folder {
			mu.Unlock()
			return
		}
		cfg.LastFolder = folder
		snapshot := *cfg
		mu.Unlock()

		// Save publishes on the bus, so keep it off the dispatcher
		pending.Add(1)
		go func() {
			defer pending.Done()
			if err := svc.Save(&snapshot); err != nil {
				log.Printf("Error saving config: %v", err)
			}
		}()
	})

	return func() {
		unsubscribe()
		pending.Wait()
	}
}
