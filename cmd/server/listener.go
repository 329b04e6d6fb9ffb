package server

import (
	"dfx-site/internal/logger"
	"net"
	"os"
	"path/filepath"
	"runtime"
)

type ListenAddr struct {
	Network string
	Address string
}

/**
 * Test if the system supports Unix socket network type
 * @returns {bool} Returns true if Unix socket is supported, false otherwise
 * @description
 * - Creates a temporary Unix socket to test system support
 * - Cleans up test socket file after testing
 * - Returns false if Unix socket creation fails
 * - Returns true if Unix socket creation succeeds
 * @example
 * supported := IsUnixSocketSupported()
 * if !supported {
 *     logger.Info("Unix socket is not supported on this system")
 * }
 */
func IsUnixSocketSupported() bool {
	if runtime.GOOS != "windows" { //window,linux,darwin
		return true
	}
	// 尝试创建一个临时的Unix socket来测试系统是否支持
	testSocketPath := filepath.Join(os.TempDir(), "test_unix_socket.sock")
	// 清理可能存在的测试socket文件
	os.Remove(testSocketPath)

	// 尝试创建Unix socket监听器
	listener, err := net.Listen("unix", testSocketPath)
	if err != nil {
		// 如果创建失败，说明系统不支持Unix socket
		return false
	}

	// 如果创建成功，关闭监听器并清理文件
	listener.Close()
	os.Remove(testSocketPath)
	return true
}

/**
 * Create TCP and Unix socket listeners
 * @param {[]ListenAddr} addrs - Listener addresses
 * @returns {[]net.Listener} Listeners that could be created
 * @returns {error} Last creation error, listeners that failed are skipped
 * @description
 * - Removes a stale socket file before listening on a Unix socket
 */
func CreateListeners(addrs []ListenAddr) ([]net.Listener, error) {
	var listeners []net.Listener

	var lastErr error
	for _, addr := range addrs {
		if addr.Network == "unix" {
			if err := os.Remove(addr.Address); err != nil && !os.IsNotExist(err) {
				logger.Errorf("Failed to remove existing socket file: %v", err)
				continue
			}
		}
		l, err := net.Listen(addr.Network, addr.Address)
		if err != nil {
			logger.Errorf("Failed to create listener on %s://%s: %v", addr.Network, addr.Address, err)
			lastErr = err
			continue
		}
		listeners = append(listeners, l)
	}
	return listeners, lastErr
}
