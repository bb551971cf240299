package mysql

import (
	"errors"
	"strings"

	driver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlErrDuplicateEntry Duplicate entry 'xxx' for key 'yyy'
const mysqlErrDuplicateEntry = 1062

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	// gorm.Config.TranslateError 开启后的翻译结果
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *driver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlErrDuplicateEntry
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern 用户输入按字面量做子串匹配，%和_不作为通配符
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
