package vaultsvc

import (
	"github.com/yourname/vault_lite/internal/models"
	"github.com/yourname/vault_lite/pkg/bytesize"
)

func usageOf(used int64, files int) models.Usage {
	avail := models.Capacity - used
	if avail < 0 {
		avail = 0
	}

	return models.Usage{
		CapacityBytes:  models.Capacity,
		UsedBytes:      used,
		AvailableBytes: avail,
		Files:          files,
		Capacity:       bytesize.Format(models.Capacity),
		Used:           bytesize.Format(used),
	}
}
