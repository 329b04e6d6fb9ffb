package catalog

import (
	"fmt"

	"dfx-site/internal/config"
	"dfx-site/internal/utils"
	"dfx-site/services"
)

// loadSite 按当前配置加载站点
func loadSite() (*services.Site, error) {
	site, err := services.NewSiteFromConfig(&config.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load site: %w", err)
	}
	return site, nil
}

// printRows 以表格输出任意带json标签的结构体列表
func printRows[T any](rows []T) {
	utils.PrintFormat(utils.ToOrderedMaps(rows))
}
