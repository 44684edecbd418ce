package chains

// DefaultNetworks is the built-in catalog. Endpoints are public nodes;
// production deployments override them via chains.yaml or
// RPCWATCH_RPC_URL_<ID>.
var DefaultNetworks = []Network{
	{ID: "ethereum", Name: "Ethereum Mainnet", Family: EVM, ChainID: "1", RPCURL: "https://ethereum-rpc.publicnode.com", Explorer: "https://etherscan.io", Aliases: []string{"eth", "mainnet"}},
	{ID: "sepolia", Name: "Ethereum Sepolia", Family: EVM, ChainID: "11155111", RPCURL: "https://ethereum-sepolia-rpc.publicnode.com", Explorer: "https://sepolia.etherscan.io"},
	{ID: "holesky", Name: "Ethereum Holesky", Family: EVM, ChainID: "17000", RPCURL: "https://ethereum-holesky-rpc.publicnode.com", Explorer: "https://holesky.etherscan.io"},
	{ID: "polygon", Name: "Polygon PoS", Family: EVM, ChainID: "137", RPCURL: "https://polygon-bor-rpc.publicnode.com", Explorer: "https://polygonscan.com", Aliases: []string{"matic"}},
	{ID: "base", Name: "Base", Family: EVM, ChainID: "8453", RPCURL: "https://base-rpc.publicnode.com", Explorer: "https://basescan.org"},
	{ID: "arbitrum", Name: "Arbitrum One", Family: EVM, ChainID: "42161", RPCURL: "https://arbitrum-one-rpc.publicnode.com", Explorer: "https://arbiscan.io", Aliases: []string{"arb"}},
	{ID: "optimism", Name: "OP Mainnet", Family: EVM, ChainID: "10", RPCURL: "https://optimism-rpc.publicnode.com", Explorer: "https://optimistic.etherscan.io", Aliases: []string{"op"}},
	{ID: "bsc", Name: "BNB Smart Chain", Family: EVM, ChainID: "56", RPCURL: "https://bsc-rpc.publicnode.com", Explorer: "https://bscscan.com", Aliases: []string{"bnb"}},
	{ID: "avalanche", Name: "Avalanche C-Chain", Family: EVM, ChainID: "43114", RPCURL: "https://avalanche-c-chain-rpc.publicnode.com", Explorer: "https://snowtrace.io", Aliases: []string{"avax"}},
	{ID: "gnosis", Name: "Gnosis Chain", Family: EVM, ChainID: "100", RPCURL: "https://gnosis-rpc.publicnode.com", Explorer: "https://gnosisscan.io", Aliases: []string{"xdai"}},
	{ID: "linea", Name: "Linea", Family: EVM, ChainID: "59144", RPCURL: "https://linea-rpc.publicnode.com", Explorer: "https://lineascan.build"},
	{ID: "scroll", Name: "Scroll", Family: EVM, ChainID: "534352", RPCURL: "https://scroll-rpc.publicnode.com", Explorer: "https://scrollscan.com"},
	{ID: "blast", Name: "Blast", Family: EVM, ChainID: "81457", RPCURL: "https://blast-rpc.publicnode.com", Explorer: "https://blastscan.io"},
	{ID: "fantom", Name: "Fantom Opera", Family: EVM, ChainID: "250", RPCURL: "https://fantom-rpc.publicnode.com", Explorer: "https://ftmscan.com", Aliases: []string{"ftm"}},
	{ID: "celo", Name: "Celo", Family: EVM, ChainID: "42220", RPCURL: "https://celo-rpc.publicnode.com", Explorer: "https://celoscan.io"},
	{ID: "moonbeam", Name: "Moonbeam", Family: EVM, ChainID: "1284", RPCURL: "https://moonbeam-rpc.publicnode.com", Explorer: "https://moonscan.io"},
	{ID: "moonriver", Name: "Moonriver", Family: EVM, ChainID: "1285", RPCURL: "https://moonriver-rpc.publicnode.com", Explorer: "https://moonriver.moonscan.io"},
	{ID: "polygon-amoy", Name: "Polygon Amoy", Family: EVM, ChainID: "80002", RPCURL: "https://polygon-amoy-bor-rpc.publicnode.com", Explorer: "https://amoy.polygonscan.com"},
	{ID: "base-sepolia", Name: "Base Sepolia", Family: EVM, ChainID: "84532", RPCURL: "https://base-sepolia-rpc.publicnode.com", Explorer: "https://sepolia.basescan.org"},
	{ID: "arbitrum-nova", Name: "Arbitrum Nova", Family: EVM, ChainID: "42170", RPCURL: "https://arbitrum-nova-rpc.publicnode.com", Explorer: "https://nova.arbiscan.io"},
	{ID: "arbitrum-sepolia", Name: "Arbitrum Sepolia", Family: EVM, ChainID: "421614", RPCURL: "https://arbitrum-sepolia-rpc.publicnode.com", Explorer: "https://sepolia.arbiscan.io"},
	{ID: "optimism-sepolia", Name: "OP Sepolia", Family: EVM, ChainID: "11155420", RPCURL: "https://optimism-sepolia-rpc.publicnode.com", Explorer: "https://sepolia-optimism.etherscan.io"},
	{ID: "bsc-testnet", Name: "BNB Smart Chain Testnet", Family: EVM, ChainID: "97", RPCURL: "https://bsc-testnet-rpc.publicnode.com", Explorer: "https://testnet.bscscan.com"},
	{ID: "opbnb", Name: "opBNB", Family: EVM, ChainID: "204", RPCURL: "https://opbnb-rpc.publicnode.com", Explorer: "https://opbnb.bscscan.com"},
	{ID: "avalanche-fuji", Name: "Avalanche Fuji", Family: EVM, ChainID: "43113", RPCURL: "https://avalanche-fuji-c-chain-rpc.publicnode.com", Explorer: "https://testnet.snowtrace.io"},
	{ID: "mantle", Name: "Mantle", Family: EVM, ChainID: "5000", RPCURL: "https://mantle-rpc.publicnode.com", Explorer: "https://mantlescan.xyz", Aliases: []string{"mnt"}},
	{ID: "cronos", Name: "Cronos", Family: EVM, ChainID: "25", RPCURL: "https://cronos-evm-rpc.publicnode.com", Explorer: "https://cronoscan.com", Aliases: []string{"cro"}},
	{ID: "kava", Name: "Kava EVM", Family: EVM, ChainID: "2222", RPCURL: "https://kava-evm-rpc.publicnode.com", Explorer: "https://kavascan.com"},
	{ID: "pulsechain", Name: "PulseChain", Family: EVM, ChainID: "369", RPCURL: "https://pulsechain-rpc.publicnode.com", Explorer: "https://scan.pulsechain.com", Aliases: []string{"pls"}},
	{ID: "taiko", Name: "Taiko", Family: EVM, ChainID: "167000", RPCURL: "https://taiko-rpc.publicnode.com", Explorer: "https://taikoscan.io"},
	{ID: "sonic", Name: "Sonic", Family: EVM, ChainID: "146", RPCURL: "https://sonic-rpc.publicnode.com", Explorer: "https://sonicscan.org"},
	{ID: "berachain", Name: "Berachain", Family: EVM, ChainID: "80094", RPCURL: "https://berachain-rpc.publicnode.com", Explorer: "https://berascan.com", Aliases: []string{"bera"}},
	{ID: "unichain", Name: "Unichain", Family: EVM, ChainID: "130", RPCURL: "https://unichain-rpc.publicnode.com", Explorer: "https://uniscan.xyz"},
	{ID: "soneium", Name: "Soneium", Family: EVM, ChainID: "1868", RPCURL: "https://soneium-rpc.publicnode.com", Explorer: "https://soneium.blockscout.com"},
	{ID: "fraxtal", Name: "Fraxtal", Family: EVM, ChainID: "252", RPCURL: "https://fraxtal-rpc.publicnode.com", Explorer: "https://fraxscan.com"},
	{ID: "chiliz", Name: "Chiliz Chain", Family: EVM, ChainID: "88888", RPCURL: "https://chiliz-rpc.publicnode.com", Explorer: "https://chiliscan.com", Aliases: []string{"chz"}},
	{ID: "evmos", Name: "Evmos", Family: EVM, ChainID: "9001", RPCURL: "https://evmos-evm-rpc.publicnode.com", Explorer: "https://escan.live"},
	{ID: "sei-evm", Name: "Sei EVM", Family: EVM, ChainID: "1329", RPCURL: "https://sei-evm-rpc.publicnode.com", Explorer: "https://seitrace.com"},
	{ID: "zksync", Name: "ZKsync Era", Family: EVM, ChainID: "324", RPCURL: "https://mainnet.era.zksync.io", Explorer: "https://explorer.zksync.io", Aliases: []string{"zksync-era"}},
	{ID: "zora", Name: "Zora", Family: EVM, ChainID: "7777777", RPCURL: "https://rpc.zora.energy", Explorer: "https://explorer.zora.energy"},
	{ID: "mode", Name: "Mode", Family: EVM, ChainID: "34443", RPCURL: "https://mainnet.mode.network", Explorer: "https://explorer.mode.network"},
	{ID: "solana", Name: "Solana Mainnet", Family: Solana, RPCURL: "https://api.mainnet-beta.solana.com", Explorer: "https://solscan.io", Aliases: []string{"sol"}},
	{ID: "solana-devnet", Name: "Solana Devnet", Family: Solana, RPCURL: "https://api.devnet.solana.com", Explorer: "https://solscan.io/?cluster=devnet"},
	{ID: "sui", Name: "Sui Mainnet", Family: Sui, RPCURL: "https://fullnode.mainnet.sui.io:443", Explorer: "https://suiscan.xyz"},
	{ID: "sui-testnet", Name: "Sui Testnet", Family: Sui, RPCURL: "https://fullnode.testnet.sui.io:443", Explorer: "https://suiscan.xyz/testnet"},
	{ID: "cosmoshub", Name: "Cosmos Hub", Family: Cosmos, ChainID: "cosmoshub-4", RPCURL: "https://cosmos-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/cosmos", Aliases: []string{"cosmos", "atom"}},
	{ID: "osmosis", Name: "Osmosis", Family: Cosmos, ChainID: "osmosis-1", RPCURL: "https://osmosis-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/osmosis", Aliases: []string{"osmo"}},
	{ID: "celestia", Name: "Celestia", Family: Cosmos, ChainID: "celestia", RPCURL: "https://celestia-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/celestia", Aliases: []string{"tia"}},
	{ID: "injective", Name: "Injective", Family: Cosmos, ChainID: "injective-1", RPCURL: "https://injective-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/injective", Aliases: []string{"inj"}},
	{ID: "cosmoshub-testnet", Name: "Cosmos Hub Testnet", Family: Cosmos, ChainID: "theta-testnet-001", RPCURL: "https://cosmos-testnet-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/cosmos-testnet"},
	{ID: "akash", Name: "Akash", Family: Cosmos, ChainID: "akashnet-2", RPCURL: "https://akash-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/akash", Aliases: []string{"akt"}},
	{ID: "axelar", Name: "Axelar", Family: Cosmos, ChainID: "axelar-dojo-1", RPCURL: "https://axelar-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/axelar", Aliases: []string{"axl"}},
	{ID: "kava-cosmos", Name: "Kava", Family: Cosmos, ChainID: "kava_2222-10", RPCURL: "https://kava-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/kava"},
	{ID: "juno", Name: "Juno", Family: Cosmos, ChainID: "juno-1", RPCURL: "https://juno-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/juno"},
	{ID: "stride", Name: "Stride", Family: Cosmos, ChainID: "stride-1", RPCURL: "https://stride-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/stride"},
	{ID: "neutron", Name: "Neutron", Family: Cosmos, ChainID: "neutron-1", RPCURL: "https://neutron-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/neutron", Aliases: []string{"ntrn"}},
	{ID: "sei", Name: "Sei", Family: Cosmos, ChainID: "pacific-1", RPCURL: "https://sei-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/sei"},
	{ID: "kujira", Name: "Kujira", Family: Cosmos, ChainID: "kaiyo-1", RPCURL: "https://kujira-rpc.publicnode.com:443", Explorer: "https://finder.kujira.network/kaiyo-1"},
	{ID: "persistence", Name: "Persistence", Family: Cosmos, ChainID: "core-1", RPCURL: "https://persistence-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/persistence", Aliases: []string{"xprt"}},
	{ID: "noble", Name: "Noble", Family: Cosmos, ChainID: "noble-1", RPCURL: "https://noble-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/noble"},
	{ID: "sui-devnet", Name: "Sui Devnet", Family: Sui, RPCURL: "https://fullnode.devnet.sui.io:443", Explorer: "https://suiscan.xyz/devnet"},
	{ID: "solana-testnet", Name: "Solana Testnet", Family: Solana, RPCURL: "https://api.testnet.solana.com", Explorer: "https://solscan.io/?cluster=testnet"},
	{ID: "dydx", Name: "dYdX Chain", Family: Cosmos, ChainID: "dydx-mainnet-1", RPCURL: "https://dydx-rpc.publicnode.com:443", Explorer: "https://www.mintscan.io/dydx"},
}
