// internal/pkg/nacos/client.go
package nacos

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nacos-group/nacos-sdk-go/v2/clients"
	"github.com/nacos-group/nacos-sdk-go/v2/clients/config_client"
	"github.com/nacos-group/nacos-sdk-go/v2/common/constant"
	"github.com/nacos-group/nacos-sdk-go/v2/vo"
	zlog "github.com/rs/zerolog/log"
)

const defaultGroup = "DEFAULT_GROUP"

// Client 封装了 Nacos 配置客户端
type Client struct {
	configClient config_client.IConfigClient
	groupName    string
}

// NewConfigClient 创建并返回一个新的 Nacos 配置客户端
// addrs 格式为 "ip1:port1,ip2:port2"
func NewConfigClient(addrs string, namespaceId, groupName string) (*Client, error) {
	if namespaceId == "" {
		zlog.Warn().Msg("⚠️ nacos namespace is not set, using the public namespace")
	}
	if groupName == "" {
		groupName = defaultGroup
	}

	serverConfigs, err := parseServerAddrs(addrs)
	if err != nil {
		return nil, err
	}

	clientConfig := *constant.NewClientConfig(
		constant.WithNotLoadCacheAtStart(true),
		constant.WithLogDir("/tmp/nacos/log"),
		constant.WithCacheDir("/tmp/nacos/cache"),
		constant.WithLogLevel("warn"),
		constant.WithNamespaceId(namespaceId),
	)

	configClient, err := clients.NewConfigClient(
		vo.NacosClientParam{
			ClientConfig:  &clientConfig,
			ServerConfigs: serverConfigs,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create nacos config client: %w", err)
	}

	zlog.Info().Str("addrs", addrs).Msg("✅ Connected to Nacos")
	return &Client{configClient: configClient, groupName: groupName}, nil
}

// GetConfig 读取 dataID 对应的配置文档
func (c *Client) GetConfig(dataID string) (string, error) {
	content, err := c.configClient.GetConfig(vo.ConfigParam{
		DataId: dataID,
		Group:  c.groupName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to get nacos config %s/%s: %w", c.groupName, dataID, err)
	}
	return content, nil
}

// Close 关闭 Nacos 客户端连接
func (c *Client) Close() {
	if c.configClient != nil {
		c.configClient.CloseClient()
	}
}

func parseServerAddrs(addrs string) ([]constant.ServerConfig, error) {
	var serverConfigs []constant.ServerConfig
	for _, addr := range strings.Split(addrs, ",") {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		parts := strings.Split(addr, ":")
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid nacos address format: %s", addr)
		}
		port, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid port in nacos address: %s", parts[1])
		}
		serverConfigs = append(serverConfigs, *constant.NewServerConfig(parts[0], port))
	}
	if len(serverConfigs) == 0 {
		return nil, fmt.Errorf("no nacos server address given")
	}
	return serverConfigs, nil
}
