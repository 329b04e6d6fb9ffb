package cmd

import (
	_ "dfx-site/cmd/catalog"
	_ "dfx-site/cmd/metrics"
	_ "dfx-site/cmd/root"
	_ "dfx-site/cmd/server"
)
