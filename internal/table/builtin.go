package table

import "github.com/roach88/relabel/internal/subst"

// Builtin returns the mission-control dashboard label table.
//
// Multi-word phrases sit ahead of the shorter words they contain ("Bitcoin
// Analysis Done" before "Bitcoin" and "Done"). The order is applied as-is;
// see Lint for the one entry ("System Built") that the order shadows.
func Builtin() subst.Table {
	return subst.Table{
		{Match: "Research Bitcoin", Replacement: "研究比特幣投資機會"},
		{Match: "Analyze BTC market", Replacement: "分析比特幣市場"},
		{Match: "FIRE Review", Replacement: "FIRE組合review"},
		{Match: "Weekly portfolio review", Replacement: "每週檢視投資組合表現"},
		{Match: "Baby Checklist", Replacement: "寶寶用品清單"},
		{Match: "Newborn essentials", Replacement: "整理初生嬰兒所需物品"},
		{Match: "Investment", Replacement: "投資"},
		{Match: "Family", Replacement: "家庭"},
		{Match: "System", Replacement: "系統"},
		{Match: "Bitcoin Analysis Done", Replacement: "比特幣投資分析完成"},
		{Match: "Complete BTC research, suggest 3-5% allocation", Replacement: "完成比特幣投資機會研究，報告已存檔。建議配置3-5%資產"},
		{Match: "Mission Control Launch", Replacement: "Mission Control系統建立"},
		{Match: "Built Mission Control Dashboard", Replacement: "建立Mission Control儀表板"},
		{Match: "Task Done", Replacement: "完成任務"},
		{Match: "Bitcoin report completed", Replacement: "比特幣投資研究報告已完成並存檔"},
		{Match: "Memory Added", Replacement: "新增記憶"},
		{Match: "Recorded BTC conclusions", Replacement: "記錄比特幣投資分析結論"},
		{Match: "System Built", Replacement: "建立系統"},
		{Match: "Created Mission Control", Replacement: "創建Mission Control儀表板"},
		{Match: "Weekly Portfolio Review", Replacement: "每週投資組合review"},
		{Match: "BTC Price Check", Replacement: "比特幣價格檢查"},
		{Match: "Bitcoin", Replacement: "比特幣"},
		{Match: "Total Assets", Replacement: "總資產"},
		{Match: "24h Change", Replacement: "24小時變動"},
		{Match: "Holdings", Replacement: "持倉數量"},
		{Match: "Cash Level", Replacement: "現金水平"},
		{Match: "Recent Activities", Replacement: "最近活動"},
		{Match: "Daily Brief", Replacement: "每日簡報"},
		{Match: "Tasks Today", Replacement: "今日任務"},
		{Match: "Schedule", Replacement: "日程"},
		{Match: "Search memories", Replacement: "搜尋記憶"},
		{Match: "Search tasks, memories, activities", Replacement: "搜尋任務、記憶、活動"},
		{Match: "To Do", Replacement: "待完成"},
		{Match: "Done", Replacement: "已完成"},
	}
}
