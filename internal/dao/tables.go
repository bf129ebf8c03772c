package dao

import "github.com/brokerage/rms-api/internal/workflow"

// Table definitions of every maker-checker entity. Filter and sort names are the
// query parameter names accepted by the list endpoints.

var CompanyTable = workflow.Table{
	Name:           "COMPANY",
	Entity:         "company",
	KeyColumns:     []string{"CO_CODE"},
	PayloadColumns: []string{"CO_NAME", "CO_ADDR", "CO_PHONE", "CO_EMAIL", "CO_EXPS_BUY_AMT", "CO_EXPS_SELL_AMT", "CO_EXPS_TOTAL_AMT"},
	SearchColumns:  []string{"CO_CODE", "CO_NAME"},
	FilterColumns:  map[string]string{"coCode": "CO_CODE"},
	SortColumns:    map[string]string{"coCode": "CO_CODE", "coName": "CO_NAME", "actionDt": "ACTION_DT"},
}

var MstCoBrchTable = workflow.Table{
	Name:           "MST_CO_BRCH",
	Entity:         "company-branch",
	KeyColumns:     []string{"CO_CODE", "BRCH_CODE"},
	PayloadColumns: []string{"BRCH_NAME", "BRCH_ADDR", "BRCH_PHONE", "BRCH_STATUS"},
	SearchColumns:  []string{"BRCH_CODE", "BRCH_NAME"},
	FilterColumns:  map[string]string{"coCode": "CO_CODE", "brchStatus": "BRCH_STATUS"},
	SortColumns:    map[string]string{"coCode": "CO_CODE", "brchCode": "BRCH_CODE", "brchName": "BRCH_NAME", "actionDt": "ACTION_DT"},
}

var ClientTable = workflow.Table{
	Name:           "CLIENT",
	Entity:         "client",
	KeyColumns:     []string{"GCIF"},
	PayloadColumns: []string{"CLNT_NAME", "CLNT_TYPE", "BRCH_CODE", "ID_NO", "PHONE", "EMAIL", "ADDRESS", "CLNT_STATUS"},
	SearchColumns:  []string{"GCIF", "CLNT_NAME", "ID_NO"},
	FilterColumns:  map[string]string{"brchCode": "BRCH_CODE", "clntType": "CLNT_TYPE", "clntStatus": "CLNT_STATUS"},
	SortColumns:    map[string]string{"gcif": "GCIF", "clntName": "CLNT_NAME", "brchCode": "BRCH_CODE", "actionDt": "ACTION_DT"},
}

var StockTable = workflow.Table{
	Name:           "STOCK",
	Entity:         "stock",
	KeyColumns:     []string{"XCHG_CODE", "STK_CODE"},
	PayloadColumns: []string{"STK_LNAME", "STK_SNAME", "ISIN", "SECTOR_CODE", "LOT_SIZE", "STK_LAST_DONE_PRICE", "STK_STATUS"},
	SearchColumns:  []string{"STK_CODE", "STK_LNAME", "STK_SNAME", "ISIN"},
	FilterColumns:  map[string]string{"xchgCode": "XCHG_CODE", "sectorCode": "SECTOR_CODE", "stkStatus": "STK_STATUS"},
	SortColumns:    map[string]string{"xchgCode": "XCHG_CODE", "stkCode": "STK_CODE", "stkLname": "STK_LNAME", "stkLastDonePrice": "STK_LAST_DONE_PRICE", "actionDt": "ACTION_DT"},
}

var ExchangeTable = workflow.Table{
	Name:           "EXCHANGE",
	Entity:         "exchange",
	KeyColumns:     []string{"XCHG_CODE", "XCHG_PREFIX", "BROKER_CODE"},
	PayloadColumns: []string{"XCHG_NAME", "CURRENCY", "COUNTRY", "XCHG_STATUS"},
	SearchColumns:  []string{"XCHG_CODE", "XCHG_NAME"},
	FilterColumns:  map[string]string{"currency": "CURRENCY", "brokerCode": "BROKER_CODE"},
	SortColumns:    map[string]string{"xchgCode": "XCHG_CODE", "xchgName": "XCHG_NAME", "actionDt": "ACTION_DT"},
}

var TraderTable = workflow.Table{
	Name:           "TRADER",
	Entity:         "trader",
	KeyColumns:     []string{"DLR_CODE"},
	PayloadColumns: []string{"DLR_NAME", "BRCH_CODE", "USR_ID", "DLR_TYPE", "DLR_EXPS_LIMIT", "DLR_STATUS"},
	SearchColumns:  []string{"DLR_CODE", "DLR_NAME"},
	FilterColumns:  map[string]string{"brchCode": "BRCH_CODE", "dlrType": "DLR_TYPE", "dlrStatus": "DLR_STATUS"},
	SortColumns:    map[string]string{"dlrCode": "DLR_CODE", "dlrName": "DLR_NAME", "actionDt": "ACTION_DT"},
}

var UserTable = workflow.Table{
	Name:           "USR",
	Entity:         "user",
	KeyColumns:     []string{"USR_ID"},
	PayloadColumns: []string{"USR_NAME", "EMAIL", "BRCH_CODE", "ROLE_CODE", "USR_STATUS"},
	SearchColumns:  []string{"USR_ID", "USR_NAME", "EMAIL"},
	FilterColumns:  map[string]string{"brchCode": "BRCH_CODE", "roleCode": "ROLE_CODE", "usrStatus": "USR_STATUS"},
	SortColumns:    map[string]string{"usrId": "USR_ID", "usrName": "USR_NAME", "actionDt": "ACTION_DT"},
}

var ClientExposureTable = workflow.Table{
	Name:           "CLIENT_EXPOSURE",
	Entity:         "client-exposure",
	KeyColumns:     []string{"CLNT_CODE", "BRCH_CODE"},
	PayloadColumns: []string{"CLNT_EXPS_BUY_AMT", "CLNT_EXPS_SELL_AMT", "CLNT_EXPS_NET_AMT"},
	SearchColumns:  []string{"CLNT_CODE"},
	FilterColumns:  map[string]string{"brchCode": "BRCH_CODE"},
	SortColumns:    map[string]string{"clntCode": "CLNT_CODE", "clntExpsBuyAmt": "CLNT_EXPS_BUY_AMT", "actionDt": "ACTION_DT"},
}

var UserExposureTable = workflow.Table{
	Name:           "USER_EXPOSURE",
	Entity:         "user-exposure",
	KeyColumns:     []string{"USR_ID"},
	PayloadColumns: []string{"USR_EXPS_BUY_AMT", "USR_EXPS_SELL_AMT", "USR_EXPS_TOTAL_AMT"},
	SearchColumns:  []string{"USR_ID"},
	FilterColumns:  map[string]string{},
	SortColumns:    map[string]string{"usrId": "USR_ID", "usrExpsTotalAmt": "USR_EXPS_TOTAL_AMT", "actionDt": "ACTION_DT"},
}

var StockExposureTable = workflow.Table{
	Name:           "STOCK_EXPOSURE",
	Entity:         "stock-exposure",
	KeyColumns:     []string{"XCHG_CODE", "STK_CODE"},
	PayloadColumns: []string{"STK_EXPS_BUY_AMT", "STK_EXPS_SELL_AMT", "MAX_HOLDING_PCT"},
	SearchColumns:  []string{"STK_CODE"},
	FilterColumns:  map[string]string{"xchgCode": "XCHG_CODE"},
	SortColumns:    map[string]string{"stkCode": "STK_CODE", "maxHoldingPct": "MAX_HOLDING_PCT", "actionDt": "ACTION_DT"},
}

var ClientStockTable = workflow.Table{
	Name:           "CLIENT_STOCK",
	Entity:         "client-stock",
	KeyColumns:     []string{"BRCH_CODE", "CLNT_CODE", "STK_CODE"},
	PayloadColumns: []string{"XCHG_CODE", "QTY", "PLEDGED_QTY", "AVG_PRICE"},
	SearchColumns:  []string{"CLNT_CODE", "STK_CODE"},
	FilterColumns:  map[string]string{"brchCode": "BRCH_CODE", "clntCode": "CLNT_CODE", "xchgCode": "XCHG_CODE"},
	SortColumns:    map[string]string{"clntCode": "CLNT_CODE", "stkCode": "STK_CODE", "qty": "QTY", "actionDt": "ACTION_DT"},
}

var OrderGroupTable = workflow.Table{
	Name:           "ORDER_GROUP",
	Entity:         "order-group",
	KeyColumns:     []string{"GRP_CODE"},
	PayloadColumns: []string{"GRP_NAME", "GRP_DESC", "GRP_TYPE"},
	SearchColumns:  []string{"GRP_CODE", "GRP_NAME"},
	FilterColumns:  map[string]string{"grpType": "GRP_TYPE"},
	SortColumns:    map[string]string{"grpCode": "GRP_CODE", "grpName": "GRP_NAME", "actionDt": "ACTION_DT"},
}

var OrderGroupUserTable = workflow.Table{
	Name:           "ORDER_GROUP_USER",
	Entity:         "order-group-user",
	KeyColumns:     []string{"GRP_CODE", "USR_ID"},
	PayloadColumns: []string{"CAN_BUY", "CAN_SELL", "MAX_ORDER_QTY", "MAX_ORDER_AMT"},
	SearchColumns:  []string{"USR_ID"},
	FilterColumns:  map[string]string{"grpCode": "GRP_CODE"},
	SortColumns:    map[string]string{"grpCode": "GRP_CODE", "usrId": "USR_ID", "actionDt": "ACTION_DT"},
}

// Tables lists every maker-checker table
var Tables = []workflow.Table{
	CompanyTable,
	MstCoBrchTable,
	ClientTable,
	StockTable,
	ExchangeTable,
	TraderTable,
	UserTable,
	ClientExposureTable,
	UserExposureTable,
	StockExposureTable,
	ClientStockTable,
	OrderGroupTable,
	OrderGroupUserTable,
}

// IsEntity reports whether name is the entity name of a maker-checker table
func IsEntity(name string) bool {
	for _, t := range Tables {
		if t.Entity == name {
			return true
		}
	}
	return false
}
