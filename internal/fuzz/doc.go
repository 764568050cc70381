// Package fuzztests houses Go fuzz harnesses for the shader front end and
// code generators. They guard against panics and hangs on arbitrary input.
//
// Назначение: прогонять байты через лексер, парсер и все три генератора.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
